package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

const locatorDescription = "Image location: an absolute path, a file:// URI, or a content:// URI served by a registered provider"

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Loading
		{
			Name:        "image_probe",
			Description: "Read an image header and return its native width, height and format without decoding pixels.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp(locatorDescription),
			}, "path"),
		},
		{
			Name:        "image_load",
			Description: "Load an image at a bounded resolution and rotate it upright from its EXIF orientation. Without max_width and max_height the configured probe bounds and final rescale apply; explicit bounds skip the final rescale. Returns the sample factor, rotation and a description of the result.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":          stringProp(locatorDescription),
				"max_width":     intProp("Decode bound in pixels. Defaults to the configured probe bound. Set with max_height to skip the final rescale."),
				"max_height":    intProp("Decode bound in pixels. Defaults to the configured probe bound. Set with max_height to skip the final rescale."),
				"include_image": boolProp("Return the loaded image base64 encoded. Default false."),
				"format":        stringProp("Encoding for include_image: jpg, png or webp. Defaults to the configured output format."),
				"quality":       intProp("Encoding quality 1-100. Defaults to the configured quality."),
			}, "path"),
		},

		// Capture and gallery
		{
			Name:        "image_capture_begin",
			Description: "Reserve a JPEG_<timestamp>_*.jpg file for a camera to write a photo into. Returns a capture_id for image_capture_complete.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "image_capture_complete",
			Description: "Load the photo written to a reserved capture file and store it as the latest photo, or cancel the capture.",
			InputSchema: objectSchema(map[string]interface{}{
				"capture_id": stringProp("Capture id returned by image_capture_begin"),
				"cancel":     boolProp("Discard the capture instead of loading it. Default false."),
			}, "capture_id"),
		},
		{
			Name:        "image_pick",
			Description: "Load an existing image and store it as the latest photo.",
			InputSchema: objectSchema(map[string]interface{}{
				"locator": stringProp(locatorDescription),
			}, "locator"),
		},
		{
			Name:        "image_latest",
			Description: "Return the path of the latest stored photo.",
			InputSchema: objectSchema(map[string]interface{}{
				"include_image": boolProp("Also return the stored file base64 encoded. Default false."),
			}),
		},

		// Color
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel of the bounded, upright image. Returns hex, RGB, RGBA and HSL.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp(locatorDescription + ". Defaults to the latest photo."),
				"x":    intProp("X coordinate (0 = left edge)"),
				"y":    intProp("Y coordinate (0 = top edge)"),
			}, "x", "y"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors of the bounded, upright image or a region of it.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":  stringProp(locatorDescription + ". Defaults to the latest photo."),
				"count": intProp("Number of colors to return. Default 5."),
				"x1":    intProp("Optional region left edge"),
				"y1":    intProp("Optional region top edge"),
				"x2":    intProp("Optional region right edge (exclusive)"),
				"y2":    intProp("Optional region bottom edge (exclusive)"),
			}),
		},
	}
}
