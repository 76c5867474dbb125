package loader

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"
)

// Loader runs the probe, decode and orient sequence against a Codec.
type Loader struct {
	codec  Codec
	opts   Options
	logger *zap.Logger
}

// New creates a Loader. A nil logger disables logging.
func New(codec Codec, opts Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		codec:  codec,
		opts:   opts,
		logger: logger,
	}
}

// Options returns the rescale options the loader was built with.
func (l *Loader) Options() Options {
	return l.opts
}

// Load decodes src at a resolution bounded by maxWidth x maxHeight, rotates it
// upright and applies the configured final rescale.
//
// On failure no image is returned and the error is a *LoadError, except for
// non-positive bounds which yield ErrInvalidBounds.
func (l *Loader) Load(src Source, maxWidth, maxHeight int) (*DecodedImage, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, ErrInvalidBounds
	}

	native, err := l.Probe(src)
	if err != nil {
		return nil, err
	}

	factor := SampleFactor(native.Width, native.Height, maxWidth, maxHeight)
	l.logger.Debug("sample factor computed",
		zap.Int("width", native.Width),
		zap.Int("height", native.Height),
		zap.Int("max_width", maxWidth),
		zap.Int("max_height", maxHeight),
		zap.Int("factor", factor))

	img, err := l.decode(src, factor)
	if err != nil {
		return nil, err
	}

	rot, err := src.Orientation()
	if err != nil {
		return nil, fail(ErrRotationFailed, "orientation", err)
	}
	if rot != Rotate0 {
		if !rot.Valid() {
			return nil, fail(ErrRotationFailed, "rotate", fmt.Errorf("unsupported rotation %d", int(rot)))
		}
		img, err = l.codec.Rotate(img, rot)
		if err != nil {
			return nil, fail(ErrRotationFailed, "rotate", err)
		}
	}

	if l.opts.rescales() {
		img, err = l.codec.Resize(img, l.opts.OutputWidth, l.opts.OutputHeight, l.opts.ResizeMode)
		if err != nil {
			return nil, fail(ErrDecodeFailed, "resize", err)
		}
	}

	return newDecodedImage(img, native, factor, rot), nil
}

// Probe reads the native dimensions and format of src from its header.
// Failures, including non-positive dimensions, are ErrUnreadableSource.
func (l *Loader) Probe(src Source) (Dimensions, error) {
	rc, err := src.Open()
	if err != nil {
		return Dimensions{}, fail(ErrUnreadableSource, "open", err)
	}
	defer rc.Close()

	dims, err := l.codec.Probe(rc)
	if err != nil {
		return Dimensions{}, fail(ErrUnreadableSource, "probe", err)
	}
	if dims.Width <= 0 || dims.Height <= 0 {
		return Dimensions{}, fail(ErrUnreadableSource, "probe",
			fmt.Errorf("invalid dimensions %dx%d", dims.Width, dims.Height))
	}
	return dims, nil
}

func (l *Loader) decode(src Source, factor int) (image.Image, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fail(ErrUnreadableSource, "open", err)
	}
	defer rc.Close()

	img, err := l.codec.DecodeAtScale(rc, factor)
	if err != nil {
		return nil, fail(ErrDecodeFailed, "decode", err)
	}
	return img, nil
}

// Resizer rescales an image to exactly width x height. It is used by the
// fallback path, which does not go through Codec.Resize.
type Resizer func(img image.Image, width, height int) image.Image

// LoadWithFallback runs Load and, if it fails with ErrDecodeFailed or
// ErrRotationFailed, decodes src unscaled and resizes the result with resize.
//
// The fallback image is not rotated. Its target is the configured output box
// when a final rescale is configured, and maxWidth x maxHeight otherwise;
// ResizeStretch fills the box exactly and any other mode preserves aspect
// ratio. ErrUnreadableSource is never retried.
func (l *Loader) LoadWithFallback(src Source, maxWidth, maxHeight int, resize Resizer) (*DecodedImage, error) {
	img, err := l.Load(src, maxWidth, maxHeight)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, ErrDecodeFailed) && !errors.Is(err, ErrRotationFailed) {
		return nil, err
	}

	l.logger.Warn("bounded load failed, decoding unscaled", zap.Error(err))

	recovered, ferr := l.loadUnscaled(src, maxWidth, maxHeight, resize)
	if ferr != nil {
		var le *LoadError
		if errors.As(ferr, &le) {
			le.Err = fmt.Errorf("%w (after: %v)", le.Err, err)
			return nil, le
		}
		return nil, ferr
	}
	return recovered, nil
}

func (l *Loader) loadUnscaled(src Source, maxWidth, maxHeight int, resize Resizer) (*DecodedImage, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fail(ErrUnreadableSource, "open", err)
	}
	defer rc.Close()

	img, err := l.codec.DecodeAtScale(rc, 1)
	if err != nil {
		return nil, fail(ErrDecodeFailed, "fallback decode", err)
	}

	b := img.Bounds()
	native := Dimensions{Width: b.Dx(), Height: b.Dy()}
	if probed, err := l.Probe(src); err == nil {
		native.Format = probed.Format
	}

	boxW, boxH, mode := maxWidth, maxHeight, ResizeFit
	if l.opts.rescales() {
		boxW, boxH, mode = l.opts.OutputWidth, l.opts.OutputHeight, l.opts.ResizeMode
	}

	w, h := boxW, boxH
	if mode != ResizeStretch {
		w, h = FitSize(native.Width, native.Height, boxW, boxH)
	}
	if resize != nil && (w != native.Width || h != native.Height) {
		img = resize(img, w, h)
	}

	out := newDecodedImage(img, native, 1, Rotate0)
	out.Recovered = true
	return out, nil
}
