package taker

import (
	"fmt"

	"github.com/ironsheep/image-taker/internal/config"
	"github.com/ironsheep/image-taker/internal/imaging"
	"github.com/ironsheep/image-taker/internal/loader"
)

// Options configures a Taker.
type Options struct {
	// ProbeMaxWidth and ProbeMaxHeight bound the sampled decode.
	ProbeMaxWidth  int
	ProbeMaxHeight int

	// Loader is the final rescale applied after orientation.
	Loader loader.Options

	// Fallback retries decode and rotation failures with an unscaled decode.
	Fallback bool

	PicturesDir string
	FilesDir    string
	CacheDir    string

	// LatestName is the base name of the latest-photo file; the extension
	// comes from Format.
	LatestName string

	Format  imaging.Format
	Quality int
}

// OptionsFromConfig validates c and converts it into Options.
func OptionsFromConfig(c *config.Config) (Options, error) {
	if err := c.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := imaging.ParseFormat(c.Output.Format)
	if err != nil {
		return Options{}, err
	}

	return Options{
		ProbeMaxWidth:  c.Loader.ProbeMaxWidth,
		ProbeMaxHeight: c.Loader.ProbeMaxHeight,
		Loader:         c.LoaderOptions(),
		Fallback:       c.Loader.Fallback,
		PicturesDir:    c.Storage.PicturesDir,
		FilesDir:       c.Storage.FilesDir,
		CacheDir:       c.Storage.CacheDir,
		LatestName:     c.Storage.LatestName,
		Format:         format,
		Quality:        c.Output.Quality,
	}, nil
}

func (o Options) validate() error {
	if o.ProbeMaxWidth <= 0 || o.ProbeMaxHeight <= 0 {
		return loader.ErrInvalidBounds
	}
	if o.PicturesDir == "" || o.FilesDir == "" || o.CacheDir == "" {
		return fmt.Errorf("storage directories cannot be empty")
	}
	if o.LatestName == "" {
		return fmt.Errorf("latest photo name cannot be empty")
	}
	if _, err := imaging.ParseFormat(string(o.Format)); err != nil {
		return err
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", o.Quality)
	}
	return nil
}
