package taker

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/image-taker/internal/codec"
	"github.com/ironsheep/image-taker/internal/loader"
)

var (
	// ErrEmptyLocator is returned by Pick for an empty locator.
	ErrEmptyLocator = errors.New("empty image locator")
	// ErrUnsupportedLocator is returned for URI schemes other than file and
	// content.
	ErrUnsupportedLocator = errors.New("unsupported image locator")
	// ErrUnknownProvider is returned for a content:// URI whose authority has
	// no registered Provider.
	ErrUnknownProvider = errors.New("no provider registered for authority")
)

// Provider serves opaque content:// URIs for one authority. Open returns the
// content and its media type, which may be empty.
type Provider interface {
	Open(uri *url.URL) (io.ReadCloser, string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(uri *url.URL) (io.ReadCloser, string, error)

// Open calls f.
func (f ProviderFunc) Open(uri *url.URL) (io.ReadCloser, string, error) {
	return f(uri)
}

// DirProvider serves content://<authority>/<name> from files in a directory.
type DirProvider string

// Open opens the named file under the directory. The media type is left to
// the file extension.
func (d DirProvider) Open(uri *url.URL) (io.ReadCloser, string, error) {
	name := filepath.Clean("/" + uri.Path)
	f, err := os.Open(filepath.Join(string(d), name))
	if err != nil {
		return nil, "", err
	}
	return f, "", nil
}

var extensionsByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
}

func contentExtension(uri *url.URL, mimeType string) string {
	if ext, ok := extensionsByType[strings.ToLower(mimeType)]; ok {
		return ext
	}
	if ext := filepath.Ext(uri.Path); ext != "" {
		return strings.ToLower(ext)
	}
	return ".img"
}

// RegisterProvider makes p serve content:// URIs for authority, replacing any
// provider already registered for it.
func (t *Taker) RegisterProvider(authority string, p Provider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.providers[authority] = p
}

func (t *Taker) provider(authority string) (Provider, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.providers[authority]
	return p, ok
}

// resolve turns a locator into a source. The returned cleanup function must
// be called once the source is no longer needed.
func (t *Taker) resolve(locator string) (loader.Source, func(), error) {
	noop := func() {}

	switch {
	case locator == "":
		return nil, noop, ErrEmptyLocator
	case strings.HasPrefix(locator, "content://"):
		return t.resolveContent(locator)
	case strings.HasPrefix(locator, "file://"):
		u, err := url.Parse(locator)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid file URI: %w", err)
		}
		if u.Path == "" {
			return nil, noop, fmt.Errorf("%w: %s", ErrEmptyLocator, locator)
		}
		return codec.FileSource{Path: u.Path}, noop, nil
	case strings.Contains(locator, "://"):
		return nil, noop, fmt.Errorf("%w: %s", ErrUnsupportedLocator, locator)
	}
	return codec.FileSource{Path: locator}, noop, nil
}

// resolveContent copies provider content into the cache directory as
// <uuid><ext>, since the loader reads its source more than once.
func (t *Taker) resolveContent(locator string) (loader.Source, func(), error) {
	noop := func() {}

	u, err := url.Parse(locator)
	if err != nil {
		return nil, noop, fmt.Errorf("invalid content URI: %w", err)
	}

	p, ok := t.provider(u.Host)
	if !ok {
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownProvider, u.Host)
	}

	rc, mimeType, err := p.Open(u)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open %s: %w", locator, err)
	}
	defer rc.Close()

	if err := os.MkdirAll(t.opts.CacheDir, 0755); err != nil {
		return nil, noop, fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(t.opts.CacheDir, uuid.NewString()+contentExtension(u, mimeType))
	f, err := os.Create(path)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create cache file: %w", err)
	}

	n, err := io.Copy(f, rc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, noop, fmt.Errorf("failed to copy %s: %w", locator, err)
	}

	t.logger.Debug("copied provider content",
		zap.String("uri", locator),
		zap.String("path", path),
		zap.Int64("bytes", n))

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			t.logger.Warn("failed to remove cache file", zap.String("path", path), zap.Error(err))
		}
	}
	return codec.FileSource{Path: path}, cleanup, nil
}
