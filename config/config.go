// Package config loads the TOML configuration file that supplies per-user defaults
// for every run. Command-line values always take precedence over it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"imagefilter/filter"
)

const (
	appName        = "imagefilter"
	configFileName = "config.toml"
)

// Probers that can be listed under `probers`
const (
	ProberHeader = "header"
	ProberExif   = "exif"
	ProberOpenCV = "opencv"
)

// Config mirrors the configuration file
type Config struct {
	RootImagesDir string   `toml:"root_images_dir,omitempty"`
	MetadataPath  string   `toml:"metadata_path,omitempty"`
	ScoreFilters  []string `toml:"score_filters,omitempty"`
	WidthRange    string   `toml:"width_range,omitempty"`
	HeightRange   string   `toml:"height_range,omitempty"`
	Workers       int      `toml:"workers,omitempty"`
	Probers       []string `toml:"probers,omitempty"`
	LogFile       string   `toml:"log_file,omitempty"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		Probers: []string{ProberHeader, ProberExif},
	}
}

// DefaultPath returns $IMAGEFILTER_CONFIG, or config.toml under the user config directory
func DefaultPath() (string, error) {
	if p := GetEnvOrDefault(EnvConfig, ""); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", &filter.ConfigError{Key: "path", Err: err}
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// EnsureFile writes the default configuration to path when nothing exists there yet.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, &filter.ConfigError{Key: "path", Err: err}
	}

	data, err := Default().TOML()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, &filter.ConfigError{Key: "path", Err: err}
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return false, &filter.ConfigError{Key: "path", Err: err}
	}
	return true, nil
}

// Load reads and validates the configuration file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &filter.ConfigError{Key: "path", Err: err}
	}

	cfg := &Config{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, &filter.ConfigError{Key: "path", Err: fmt.Errorf("%s: %w", path, err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that ranges, filters and probers parse
func (c *Config) Validate() error {
	if _, err := parseOptionalRange("width_range", c.WidthRange); err != nil {
		return err
	}
	if _, err := parseOptionalRange("height_range", c.HeightRange); err != nil {
		return err
	}
	if _, err := filter.ParseScoreFilters(c.ScoreFilters); err != nil {
		return &filter.ConfigError{Key: "score_filters", Err: err}
	}
	if c.Workers < 0 {
		return &filter.ConfigError{Key: "workers", Err: fmt.Errorf("must not be negative, got %d", c.Workers)}
	}
	for _, p := range c.Probers {
		switch p {
		case ProberHeader, ProberExif, ProberOpenCV:
		default:
			return &filter.ConfigError{Key: "probers", Err: fmt.Errorf("unknown prober %q", p)}
		}
	}
	return nil
}

// TOML renders the configuration as a commented TOML document
func (c *Config) TOML() (string, error) {
	body, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("cannot encode config: %w", err)
	}
	return header + string(body), nil
}

const header = `# imagefilter configuration
#
# root_images_dir = "/path/to/images"
# metadata_path   = "/path/to/metas.json"   # .json, .yaml/.yml or .db/.sqlite
# score_filters   = ["score >= 5.0"]
# width_range     = "200..4000"              # MIN..MAX, either side optional
# height_range    = "..3000"
# workers         = 0                        # 0 picks a value from the CPU count
# probers         = ["header", "exif", "opencv"]
# log_file        = "/path/to/imagefilter.log"

`
