package codec

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/image-taker/internal/loader"
)

// FileSource reads an encoded image from a file on every Open.
type FileSource struct {
	Path string
}

// Open opens the file for reading.
func (s FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return f, nil
}

// Orientation reads the EXIF orientation tag from the file.
func (s FileSource) Orientation() (loader.Rotation, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return loader.Rotate0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return ReadOrientation(f)
}

// BytesSource serves an encoded image held in memory.
type BytesSource struct {
	Data []byte
}

// Open returns a reader over the data.
func (s BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

// Orientation reads the EXIF orientation tag from the data.
func (s BytesSource) Orientation() (loader.Rotation, error) {
	return ReadOrientation(bytes.NewReader(s.Data))
}

// RecoverResize is the loader.Resizer used on the fallback path. It resizes
// with bild's linear filter rather than the codec's own resampler.
func RecoverResize(img image.Image, width, height int) image.Image {
	return transform.Resize(img, width, height, transform.Linear)
}
