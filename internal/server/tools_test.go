package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"image_probe",
		"image_load",
		"image_capture_begin",
		"image_capture_complete",
		"image_pick",
		"image_latest",
		"image_sample_color",
		"image_dominant_colors",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be a declared property.
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required field %s is not a property", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	want := map[string][]string{
		"image_probe":            {"path"},
		"image_load":             {"path"},
		"image_capture_complete": {"capture_id"},
		"image_pick":             {"locator"},
		"image_sample_color":     {"x", "y"},
	}

	for _, tool := range GetToolDefinitions() {
		fields, ok := want[tool.Name]
		if !ok {
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(fields) {
				t.Fatalf("required: got %v, want %v", required, fields)
			}
			for i := range fields {
				if required[i] != fields[i] {
					t.Errorf("required: got %v, want %v", required, fields)
				}
			}
		})
	}
}
