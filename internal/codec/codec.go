// Package codec is the default implementation of the loader's image
// primitives, built on the registered Go image decoders and the imaging
// library.
//
// Supported input formats are JPEG, PNG and GIF from the standard library and
// WebP, BMP and TIFF from golang.org/x/image.
package codec

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-taker/internal/loader"
)

// Codec implements loader.Codec.
//
// The Go decoders cannot decode at a reduced resolution, so DecodeAtScale
// decodes at full size and reduces with a box filter. The returned image has
// the size a sampled decode would have had.
type Codec struct{}

var _ loader.Codec = (*Codec)(nil)

// New returns a Codec.
func New() *Codec {
	return &Codec{}
}

// Probe reads the image header from r and reports its size and format.
func (c *Codec) Probe(r io.Reader) (loader.Dimensions, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return loader.Dimensions{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return loader.Dimensions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}

// DecodeAtScale decodes r and reduces it by factor in each dimension.
func (c *Codec) DecodeAtScale(r io.Reader, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("invalid sample factor %d", factor)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if factor == 1 {
		return img, nil
	}

	b := img.Bounds()
	w, h := loader.ScaledSize(b.Dx(), b.Dy(), factor)
	return imaging.Resize(img, w, h, imaging.Box), nil
}

// Rotate turns img clockwise by rot. The imaging rotations are
// counter-clockwise, so 90 and 270 are swapped here.
func (c *Codec) Rotate(img image.Image, rot loader.Rotation) (image.Image, error) {
	switch rot {
	case loader.Rotate0:
		return img, nil
	case loader.Rotate90:
		return imaging.Rotate270(img), nil
	case loader.Rotate180:
		return imaging.Rotate180(img), nil
	case loader.Rotate270:
		return imaging.Rotate90(img), nil
	default:
		return nil, fmt.Errorf("unsupported rotation %d", int(rot))
	}
}

// Resize fits img into width x height. ResizeFit preserves aspect ratio and
// never enlarges, ResizeStretch fills the box exactly and ResizeNone returns
// img unchanged.
func (c *Codec) Resize(img image.Image, width, height int, mode loader.ResizeMode) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", width, height)
	}

	switch mode {
	case loader.ResizeNone, "":
		return img, nil
	case loader.ResizeFit:
		return imaging.Fit(img, width, height, imaging.Lanczos), nil
	case loader.ResizeStretch:
		return imaging.Resize(img, width, height, imaging.Lanczos), nil
	default:
		return nil, fmt.Errorf("unknown resize mode: %q", mode)
	}
}
