package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor is an 8-bit RGB triple with alpha (0 transparent, 255 opaque).
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor holds hue in degrees (0-360) and saturation and lightness in
// percent (0-100).
type HSLColor struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorResult is one color in the representations the tools report.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// ErrEmptyRegion is returned when a color summary is asked for an area that
// contains no pixels.
var ErrEmptyRegion = errors.New("region contains no pixels")

func newColorResult(r8, g8, b8, a8 uint8) ColorResult {
	c := colorful.Color{R: float64(r8) / 255, G: float64(g8) / 255, B: float64(b8) / 255}
	h, s, l := c.Hsl()
	return ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// SampleColor returns the color of the pixel at (x, y). Coordinates are
// relative to the image origin, with (0,0) at the top-left corner.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	b := img.Bounds()
	px, py := b.Min.X+x, b.Min.Y+y
	if x < 0 || y < 0 || px >= b.Max.X || py >= b.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, b.Dx(), b.Dy())
	}

	r, g, bl, a := img.At(px, py).RGBA()
	res := newColorResult(uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8))
	return &res, nil
}

// AverageColor returns the mean color over every pixel of img.
func AverageColor(img image.Image) (*ColorResult, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyRegion
	}

	var sr, sg, sb, sa uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			sr += uint64(r >> 8)
			sg += uint64(g >> 8)
			sb += uint64(bl >> 8)
			sa += uint64(a >> 8)
		}
	}

	n := uint64(b.Dx()) * uint64(b.Dy())
	res := newColorResult(uint8(sr/n), uint8(sg/n), uint8(sb/n), uint8(sa/n))
	return &res, nil
}

// ColorFrequency is a quantized color and the share of pixels it covers.
type ColorFrequency struct {
	Hex        string   `json:"hex"`
	Percentage float64  `json:"percentage"` // 0-100
	RGB        RGBColor `json:"rgb"`
}

// DominantColorsResult lists colors most frequent first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns up to count of the most common colors in region, or
// in the whole image when region is nil. The region is clipped to the image.
//
// Colors are quantized to steps of 16 per channel before counting, so
// #F0F0F0 and #FAFAFA fall in the same bucket. Ties are broken by hex value
// to keep the result stable.
func DominantColors(img image.Image, count int, region *image.Rectangle) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	bounds := img.Bounds()
	if region != nil {
		bounds = region.Add(bounds.Min).Intersect(bounds)
	}
	if bounds.Empty() {
		return nil, ErrEmptyRegion
	}

	counts := make(map[RGBColor]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := RGBColor{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
		}
	}

	total := float64(bounds.Dx() * bounds.Dy())
	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		c := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
		colors = append(colors, ColorFrequency{
			Hex:        strings.ToUpper(c.Hex()),
			Percentage: float64(n) / total * 100,
			RGB:        rgb,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return &DominantColorsResult{Colors: colors}, nil
}
