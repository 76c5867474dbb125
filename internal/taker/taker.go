package taker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/image-taker/internal/codec"
	"github.com/ironsheep/image-taker/internal/imaging"
	"github.com/ironsheep/image-taker/internal/loader"
)

// ErrNoImage is returned by LatestFile before any photo has been stored.
var ErrNoImage = errors.New("no image has been captured or picked")

// Origin says where a photo came from.
type Origin string

const (
	OriginCamera  Origin = "camera"
	OriginGallery Origin = "gallery"
)

// Capture is a file reserved for a camera to write a photo into.
type Capture struct {
	Path    string    `json:"path"`
	Created time.Time `json:"created"`
}

// Result is a stored photo.
type Result struct {
	Image  *loader.DecodedImage
	Path   string // latest-photo file
	Size   int64  // encoded size in bytes
	Origin Origin
}

// Taker loads captured and picked photos and stores the latest one.
// It is safe for concurrent use.
type Taker struct {
	opts    Options
	loader  *loader.Loader
	bounded *loader.Loader // no final rescale, for caller-given bounds
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.Mutex
	providers map[string]Provider
	latest    string
}

// New creates a Taker and its storage directories. A latest-photo file left
// by an earlier run is picked up as the current latest photo. A nil logger
// disables logging.
func New(opts Options, logger *zap.Logger) (*Taker, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, dir := range []string{opts.PicturesDir, opts.FilesDir, opts.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	c := codec.New()
	t := &Taker{
		opts:      opts,
		loader:    loader.New(c, opts.Loader, logger.Named("loader")),
		bounded:   loader.New(c, loader.Options{}, logger.Named("loader")),
		logger:    logger,
		now:       time.Now,
		providers: make(map[string]Provider),
	}

	if _, err := os.Stat(t.latestPath()); err == nil {
		t.latest = t.latestPath()
	}

	logger.Debug("taker ready",
		zap.String("files_dir", opts.FilesDir),
		zap.String("latest", t.latest))
	return t, nil
}

// Options returns the options the taker was built with.
func (t *Taker) Options() Options {
	return t.opts
}

func (t *Taker) latestPath() string {
	return filepath.Join(t.opts.FilesDir, t.opts.LatestName+t.opts.Format.Extension())
}

// BeginCapture reserves an empty JPEG_<yyyyMMdd_HHmmss>_*.jpg file in the
// pictures directory for a camera to write into.
func (t *Taker) BeginCapture() (*Capture, error) {
	now := t.now()
	prefix := "JPEG_" + now.Format("20060102_150405") + "_"

	f, err := os.CreateTemp(t.opts.PicturesDir, prefix+"*.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to reserve capture file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to reserve capture file: %w", err)
	}

	t.logger.Debug("capture reserved", zap.String("path", f.Name()))
	return &Capture{Path: f.Name(), Created: now}, nil
}

// CompleteCapture loads the photo the camera wrote to c and stores it as the
// latest photo. The capture file is removed on success and kept on failure so
// the caller can retry or cancel.
func (t *Taker) CompleteCapture(c *Capture) (*Result, error) {
	if c == nil || c.Path == "" {
		return nil, fmt.Errorf("no capture in progress")
	}

	res, err := t.store(codec.FileSource{Path: c.Path}, OriginCamera)
	if err != nil {
		return nil, err
	}

	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		t.logger.Warn("failed to remove capture file", zap.String("path", c.Path), zap.Error(err))
	}
	return res, nil
}

// CancelCapture discards the file reserved for c.
func (t *Taker) CancelCapture(c *Capture) error {
	if c == nil || c.Path == "" {
		return nil
	}
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove capture file: %w", err)
	}
	return nil
}

// Pick loads the image at locator and stores it as the latest photo.
func (t *Taker) Pick(locator string) (*Result, error) {
	src, cleanup, err := t.resolve(locator)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return t.store(src, OriginGallery)
}

// Load loads the image at locator within maxWidth x maxHeight without storing
// it. Positive bounds are used as given and skip the configured final
// rescale. Non-positive bounds fall back to the configured probe bounds and
// the final rescale, as for a stored photo.
func (t *Taker) Load(locator string, maxWidth, maxHeight int) (*loader.DecodedImage, error) {
	src, cleanup, err := t.resolve(locator)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if maxWidth <= 0 || maxHeight <= 0 {
		return t.load(t.loader, src, t.opts.ProbeMaxWidth, t.opts.ProbeMaxHeight)
	}
	return t.load(t.bounded, src, maxWidth, maxHeight)
}

// Probe reports the native dimensions of the image at locator.
func (t *Taker) Probe(locator string) (loader.Dimensions, error) {
	src, cleanup, err := t.resolve(locator)
	if err != nil {
		return loader.Dimensions{}, err
	}
	defer cleanup()

	return t.loader.Probe(src)
}

// LatestFile returns the path of the latest photo.
func (t *Taker) LatestFile() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest == "" {
		return "", ErrNoImage
	}
	if _, err := os.Stat(t.latest); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	return t.latest, nil
}

func (t *Taker) load(l *loader.Loader, src loader.Source, maxWidth, maxHeight int) (*loader.DecodedImage, error) {
	if t.opts.Fallback {
		return l.LoadWithFallback(src, maxWidth, maxHeight, codec.RecoverResize)
	}
	return l.Load(src, maxWidth, maxHeight)
}

func (t *Taker) store(src loader.Source, origin Origin) (*Result, error) {
	img, err := t.load(t.loader, src, t.opts.ProbeMaxWidth, t.opts.ProbeMaxHeight)
	if err != nil {
		t.logger.Warn("failed to load photo",
			zap.String("origin", string(origin)),
			zap.String("kind", loader.Kind(err)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}

	path, size, err := t.persist(img)
	if err != nil {
		t.logger.Warn("failed to store photo", zap.Error(err))
		return nil, err
	}

	t.logger.Info("photo stored",
		zap.String("origin", string(origin)),
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("sample_factor", img.SampleFactor),
		zap.Stringer("rotation", img.Rotation),
		zap.Bool("recovered", img.Recovered))

	return &Result{Image: img, Path: path, Size: size, Origin: origin}, nil
}

// persist encodes img into a temp file next to the latest-photo file and
// renames it into place.
func (t *Taker) persist(img *loader.DecodedImage) (string, int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tmp, err := os.CreateTemp(t.opts.FilesDir, "."+t.opts.LatestName+"-*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create photo file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := imaging.Encode(tmp, img.Image, t.opts.Format, t.opts.Quality); err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to write photo: %w", err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("failed to write photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to write photo: %w", err)
	}

	path := t.latestPath()
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, fmt.Errorf("failed to replace latest photo: %w", err)
	}

	t.latest = path
	return path, info.Size(), nil
}
