package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Format is an output encoding.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat converts a format name into a Format. "jpeg" is accepted as an
// alias for "jpg"; matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("unsupported output format: %q", s)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// MIMEType returns the media type for f.
func (f Format) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// Encode writes img to w in format f. quality (1-100) applies to JPEG and
// lossy WebP and is ignored for PNG. A quality of 100 encodes WebP
// losslessly.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", quality)
	}

	var err error
	switch f {
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: quality == 100, Quality: float32(quality)})
	default:
		return fmt.Errorf("unsupported output format: %q", f)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// EncodedImage is an encoded image ready for a JSON transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeBase64 encodes img in format f and returns it base64 encoded.
func EncodeBase64(img image.Image, f Format, quality int) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, quality); err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Size:        buf.Len(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    f.MIMEType(),
	}, nil
}
