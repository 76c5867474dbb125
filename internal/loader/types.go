package loader

import (
	"fmt"
	"image"
	"io"
)

// Dimensions are the native size of an encoded image as reported by a probe.
type Dimensions struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format,omitempty"`
}

// Rotation is a clockwise rotation in degrees needed to display an image
// upright. Only multiples of 90 are meaningful.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// RotationFromEXIF maps an EXIF orientation value to the clockwise rotation
// that makes the image upright. Mirrored orientations (2, 4, 5, 7) and unknown
// values map to Rotate0.
func RotationFromEXIF(orientation int) Rotation {
	switch orientation {
	case 3:
		return Rotate180
	case 6:
		return Rotate90
	case 8:
		return Rotate270
	default:
		return Rotate0
	}
}

// Valid reports whether r is one of the four supported rotations.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// ResizeMode selects how a decoded image is fitted into the output box.
type ResizeMode string

const (
	// ResizeNone leaves the sampled decode as is.
	ResizeNone ResizeMode = "none"
	// ResizeFit scales down to fit inside the box, preserving aspect ratio.
	// Images already inside the box are not enlarged.
	ResizeFit ResizeMode = "fit"
	// ResizeStretch scales to exactly the box, distorting non-matching
	// aspect ratios.
	ResizeStretch ResizeMode = "stretch"
)

// ParseResizeMode converts a configuration string into a ResizeMode.
// An empty string means ResizeNone.
func ParseResizeMode(s string) (ResizeMode, error) {
	switch ResizeMode(s) {
	case "", ResizeNone:
		return ResizeNone, nil
	case ResizeFit:
		return ResizeFit, nil
	case ResizeStretch:
		return ResizeStretch, nil
	}
	return "", fmt.Errorf("unknown resize mode: %q", s)
}

// Options configures the final rescale applied after orientation correction.
// The zero value disables it.
type Options struct {
	OutputWidth  int
	OutputHeight int
	ResizeMode   ResizeMode
}

func (o Options) rescales() bool {
	return o.ResizeMode != "" && o.ResizeMode != ResizeNone && o.OutputWidth > 0 && o.OutputHeight > 0
}

// DecodedImage is the result of a load. It is owned by the caller; the loader
// keeps no reference to it.
type DecodedImage struct {
	Image image.Image

	// Width and Height are the dimensions of Image.
	Width  int
	Height int

	// Native is what the probe reported for the source.
	Native Dimensions

	// SampleFactor is the divisor the source was decoded at.
	SampleFactor int

	// Rotation is the clockwise rotation that was applied.
	Rotation Rotation

	// Recovered is set when the image came from the fallback path.
	Recovered bool
}

func newDecodedImage(img image.Image, native Dimensions, factor int, rot Rotation) *DecodedImage {
	b := img.Bounds()
	return &DecodedImage{
		Image:        img,
		Width:        b.Dx(),
		Height:       b.Dy(),
		Native:       native,
		SampleFactor: factor,
		Rotation:     rot,
	}
}

// Source is an encoded image that can be read more than once.
//
// Open returns a fresh stream positioned at the start of the data on every
// call. Orientation reports the rotation stored alongside the data, and
// Rotate0 when there is none.
type Source interface {
	Open() (io.ReadCloser, error)
	Orientation() (Rotation, error)
}

// Codec is the set of platform image primitives the loader is written
// against.
type Codec interface {
	// Probe reads just enough of r to report its dimensions.
	Probe(r io.Reader) (Dimensions, error)

	// DecodeAtScale decodes r so that each dimension is roughly the native
	// size divided by factor.
	DecodeAtScale(r io.Reader, factor int) (image.Image, error)

	// Rotate turns img clockwise by rot without resampling.
	Rotate(img image.Image, rot Rotation) (image.Image, error)

	// Resize fits img into width x height according to mode.
	Resize(img image.Image, width, height int, mode ResizeMode) (image.Image, error)
}
