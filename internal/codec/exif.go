package codec

import (
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/ironsheep/image-taker/internal/loader"
)

// ReadOrientation returns the clockwise rotation recorded in the EXIF
// orientation tag of r.
//
// Data without EXIF, or with EXIF that cannot be parsed, has no orientation
// and yields Rotate0. A broken Exif, GPS or Interop sub-IFD does not hide the
// orientation in IFD0. An orientation tag that is present but cannot be read
// as an integer is an error.
func ReadOrientation(r io.Reader) (loader.Rotation, error) {
	x, err := exif.Decode(r)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return loader.Rotate0, nil
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return loader.Rotate0, nil
	}

	v, err := tag.Int(0)
	if err != nil {
		return loader.Rotate0, fmt.Errorf("failed to read orientation tag: %w", err)
	}
	return loader.RotationFromEXIF(v), nil
}
