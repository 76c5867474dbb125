package imaging

import (
	"image"
)

// ImageInfo describes a decoded image.
type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the encoding the image was decoded from, as reported by the
	// decoder ("jpeg", "png", ...). Empty when unknown.
	Format string `json:"format,omitempty"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether the pixel model carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Average is the mean color over the whole image.
	Average *ColorResult `json:"average_color,omitempty"`
}

// Describe reports the size, pixel model and average color of img.
//
// Color depth and alpha are derived from the concrete image type:
// *image.RGBA64, *image.NRGBA64 and *image.Gray16 are 16-bit, and the RGBA
// variants carry alpha. Paletted images carry alpha when the palette has a
// non-opaque entry.
func Describe(img image.Image, format string) *ImageInfo {
	b := img.Bounds()
	info := &ImageInfo{
		Width:      b.Dx(),
		Height:     b.Dy(),
		Format:     format,
		ColorDepth: "8-bit",
	}

	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray16:
		info.ColorDepth = "16-bit"
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				info.HasAlpha = true
				break
			}
		}
	}

	if avg, err := AverageColor(img); err == nil {
		info.Average = avg
	}
	return info
}
