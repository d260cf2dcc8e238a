// Package config provides the JSON configuration for the colorconv command.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	img "colorconv/internal/image"
	"colorconv/internal/pipeline"
)

const configFile = "config.json"

// Backends select which codecs load and store images.
const (
	BackendGo     = "go"     // image/* and golang.org/x/image
	BackendOpenCV = "opencv" // gocv IMRead/IMWrite
)

// Config holds every tunable of a conversion run.
type Config struct {
	Input       string  `json:"input"`
	OutputDir   string  `json:"output_dir"`
	Brightness  float64 `json:"brightness"`
	Format      string  `json:"format"`
	JPEGQuality int     `json:"jpeg_quality"`
	Workers     int     `json:"workers"` // 0 selects GOMAXPROCS
	Backend     string  `json:"backend"`
	Montage     bool    `json:"montage"`
}

// Default returns the settings used when neither a file nor flags override them.
func Default() Config {
	return Config{
		Input:       "img.jpg",
		OutputDir:   ".",
		Brightness:  pipeline.DefaultBrightness,
		Format:      string(img.FormatJPEG),
		JPEGQuality: img.DefaultJPEGQuality,
		Backend:     BackendGo,
	}
}

// DefaultPath returns ~/.config/colorconv/config.json (or the platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "colorconv", configFile)
}

// Load overlays the JSON file at path onto Default. Keys missing from the
// file keep their defaults. A missing file is not an error when optional is
// set.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON, creating parent directories.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if !(c.Brightness >= -1 && c.Brightness <= 1) {
		errs = append(errs, fmt.Errorf("brightness %v outside [-1, 1]", c.Brightness))
	}
	if _, err := img.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality %d outside [1, 100]", c.JPEGQuality))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if c.Backend != BackendGo && c.Backend != BackendOpenCV {
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	return errors.Join(errs...)
}

// OutputFormat returns the parsed output format. Call Validate first.
func (c Config) OutputFormat() img.Format {
	f, _ := img.ParseFormat(c.Format)
	return f
}
