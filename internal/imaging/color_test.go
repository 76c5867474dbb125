package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a uniformly colored test image.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with a different color in each quadrant.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			default:
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB != (RGBColor{255, 128, 64}) {
		t.Errorf("RGB: got %+v, want (255,128,64)", result.RGB)
	}
	if result.RGBA != (RGBAColor{255, 128, 64, 255}) {
		t.Errorf("RGBA: got %+v, want (255,128,64,255)", result.RGBA)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#FF0000", HSLColor{0, 100, 50}},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00FF00", HSLColor{120, 100, 50}},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000FF", HSLColor{240, 100, 50}},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", HSLColor{0, 0, 0}},
		{"gray", color.RGBA{128, 128, 128, 255}, "#808080", HSLColor{0, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if abs(result.HSL.H-tt.wantHSL.H) > 1 || abs(result.HSL.S-tt.wantHSL.S) > 1 || abs(result.HSL.L-tt.wantHSL.L) > 1 {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y); err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColor_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; sampling is relative.
	sub := createPatternImage(100, 100).SubImage(image.Rect(50, 50, 100, 100))

	result, err := SampleColor(sub, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#FFFFFF" {
		t.Errorf("Hex: got %s, want #FFFFFF", result.Hex)
	}
	if _, err := SampleColor(sub, 50, 0); err == nil {
		t.Error("SampleColor should fail past the sub-image width")
	}
}

func TestAverageColor(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := AverageColor(img)
	if err != nil {
		t.Fatalf("AverageColor failed: %v", err)
	}

	// red, green, blue, white quarters: each channel averages (255+255)/4.
	want := RGBColor{127, 127, 127}
	if result.RGB != want {
		t.Errorf("RGB: got %+v, want %+v", result.RGB, want)
	}
	if result.RGBA.A != 255 {
		t.Errorf("alpha: got %d, want 255", result.RGBA.A)
	}

	if _, err := AverageColor(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("empty image: got %v, want ErrEmptyRegion", err)
	}
}

func TestDominantColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 80 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255}) // 80% red
			} else {
				img.Set(x, y, color.RGBA{0, 255, 0, 255}) // 20% green
			}
		}
	}

	result, err := DominantColors(img, 5, nil)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(result.Colors))
	}
	// 255 quantizes to 240.
	if result.Colors[0].Hex != "#F00000" || result.Colors[0].Percentage != 80 {
		t.Errorf("first color: got %s %.1f%%, want #F00000 80%%", result.Colors[0].Hex, result.Colors[0].Percentage)
	}
	if result.Colors[1].Hex != "#00F000" || result.Colors[1].Percentage != 20 {
		t.Errorf("second color: got %s %.1f%%, want #00F000 20%%", result.Colors[1].Hex, result.Colors[1].Percentage)
	}
}

func TestDominantColors_WithRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	region := image.Rect(0, 0, 50, 50)
	result, err := DominantColors(img, 5, &region)
	if err != nil {
		t.Fatalf("DominantColors with region failed: %v", err)
	}

	if len(result.Colors) != 1 || result.Colors[0].Percentage != 100 {
		t.Errorf("expected red to cover the top-left region, got %+v", result.Colors)
	}
}

func TestDominantColors_Count(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := DominantColors(img, 2, nil)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Errorf("expected 2 colors, got %d", len(result.Colors))
	}

	// Four equal quarters tie; order falls back to hex.
	if result.Colors[0].Hex != "#0000F0" || result.Colors[1].Hex != "#00F000" {
		t.Errorf("tie order: got %s, %s", result.Colors[0].Hex, result.Colors[1].Hex)
	}
}

func TestDominantColors_Invalid(t *testing.T) {
	img := createPatternImage(100, 100)

	if _, err := DominantColors(img, 0, nil); err == nil {
		t.Error("DominantColors should fail for count 0")
	}

	outside := image.Rect(200, 200, 300, 300)
	if _, err := DominantColors(img, 3, &outside); !errors.Is(err, ErrEmptyRegion) {
		t.Errorf("region outside image: got %v, want ErrEmptyRegion", err)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
