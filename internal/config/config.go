// Package config holds the image-taker configuration file format.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/image-taker/internal/imaging"
	"github.com/ironsheep/image-taker/internal/loader"
)

// Config holds the application configuration.
type Config struct {
	Loader  LoaderConfig  `json:"loader"`
	Storage StorageConfig `json:"storage"`
	Output  OutputConfig  `json:"output"`
}

// LoaderConfig bounds the decode and sets the final rescale.
type LoaderConfig struct {
	ProbeMaxWidth  int    `json:"probe_max_width"`
	ProbeMaxHeight int    `json:"probe_max_height"`
	OutputWidth    int    `json:"output_width"`
	OutputHeight   int    `json:"output_height"`
	ResizeMode     string `json:"resize_mode"`
	Fallback       bool   `json:"fallback"`
}

// StorageConfig locates the capture, latest-photo and provider cache
// directories.
type StorageConfig struct {
	PicturesDir string `json:"pictures_dir"`
	FilesDir    string `json:"files_dir"`
	CacheDir    string `json:"cache_dir"`
	LatestName  string `json:"latest_name"`
}

// OutputConfig selects how the latest photo is encoded.
type OutputConfig struct {
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

// Default returns a configuration with default values. Storage directories
// live under the user cache directory.
func Default() *Config {
	base := defaultBaseDir()
	return &Config{
		Loader: LoaderConfig{
			ProbeMaxWidth:  1024,
			ProbeMaxHeight: 1024,
			OutputWidth:    1000,
			OutputHeight:   1000,
			ResizeMode:     string(loader.ResizeFit),
			Fallback:       true,
		},
		Storage: StorageConfig{
			PicturesDir: filepath.Join(base, "pictures"),
			FilesDir:    filepath.Join(base, "files"),
			CacheDir:    filepath.Join(base, "cache"),
			LatestName:  "photo",
		},
		Output: OutputConfig{
			Format:  string(imaging.FormatJPEG),
			Quality: 100,
		},
	}
}

func defaultBaseDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "image-taker")
}

// LoadFromFile loads configuration from a JSON file. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Loader.ProbeMaxWidth < 1 || c.Loader.ProbeMaxHeight < 1 {
		return fmt.Errorf("loader.probe_max_width and loader.probe_max_height must be positive")
	}

	mode, err := loader.ParseResizeMode(c.Loader.ResizeMode)
	if err != nil {
		return fmt.Errorf("loader.resize_mode: %w", err)
	}
	if mode != loader.ResizeNone && (c.Loader.OutputWidth < 1 || c.Loader.OutputHeight < 1) {
		return fmt.Errorf("loader.output_width and loader.output_height must be positive when resize_mode is %s", mode)
	}

	if c.Storage.PicturesDir == "" || c.Storage.FilesDir == "" || c.Storage.CacheDir == "" {
		return fmt.Errorf("storage directories cannot be empty")
	}

	if c.Storage.LatestName == "" || filepath.Base(c.Storage.LatestName) != c.Storage.LatestName {
		return fmt.Errorf("storage.latest_name must be a plain file name")
	}

	if _, err := imaging.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// LoaderOptions converts the loader section into loader.Options. The
// configuration must have passed Validate.
func (c *Config) LoaderOptions() loader.Options {
	mode, _ := loader.ParseResizeMode(c.Loader.ResizeMode)
	return loader.Options{
		OutputWidth:  c.Loader.OutputWidth,
		OutputHeight: c.Loader.OutputHeight,
		ResizeMode:   mode,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-taker", "config.json")
}
