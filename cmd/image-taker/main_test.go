package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/ironsheep/image-taker/internal/config"
)

func TestWriteConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	if err := writeConfig(path, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("writeConfig failed: %v", err)
	}

	got, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	want := config.Default()
	if got.Loader != want.Loader || got.Output != want.Output || got.Storage != want.Storage {
		t.Errorf("written config differs from defaults: got %+v, want %+v", got, want)
	}
}

func TestWriteConfig_FillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"output": {"format": "png"}}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := writeConfig(path, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("writeConfig failed: %v", err)
	}

	got, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if got.Output.Format != "png" {
		t.Errorf("Output.Format: got %q, want png", got.Output.Format)
	}
	if got.Output.Quality != 100 || got.Loader.ProbeMaxWidth != 1024 {
		t.Errorf("missing keys should keep defaults, got %+v", got)
	}
}

func TestWriteConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	original := []byte(`{"output": {"quality": 0}}`)
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := writeConfig(path, zaptest.NewLogger(t)); err == nil {
		t.Fatal("writeConfig should reject an invalid config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(original) {
		t.Error("invalid config should be left untouched")
	}
}
