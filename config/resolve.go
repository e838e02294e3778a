package config

import (
	"errors"

	"imagefilter/filter"
)

// Overrides holds per-run values from the command line. Zero values defer to the config.
type Overrides struct {
	Directory    string
	MetadataPath string
	ScoreFilters []string
	WidthRange   string
	HeightRange  string
	Workers      int
}

// Resolve merges overrides over the configuration into pipeline options.
// The root directory is required; everything else is optional.
func (c *Config) Resolve(o Overrides) (filter.Options, error) {
	var opts filter.Options

	opts.Root = firstNonEmpty(o.Directory, c.RootImagesDir)
	if opts.Root == "" {
		return opts, &filter.ConfigError{Key: "root_images_dir", Err: errors.New("root directory must be specified")}
	}

	opts.MetadataPath = firstNonEmpty(o.MetadataPath, c.MetadataPath)

	exprs := o.ScoreFilters
	if len(exprs) == 0 {
		exprs = c.ScoreFilters
	}
	filters, err := filter.ParseScoreFilters(exprs)
	if err != nil {
		return opts, &filter.ConfigError{Key: "score_filters", Err: err}
	}
	if len(filters) > 0 {
		opts.ScoreFilters = filters
	}

	if opts.Width, err = parseOptionalRange("width_range", firstNonEmpty(o.WidthRange, c.WidthRange)); err != nil {
		return opts, err
	}
	if opts.Height, err = parseOptionalRange("height_range", firstNonEmpty(o.HeightRange, c.HeightRange)); err != nil {
		return opts, err
	}

	opts.Workers = c.Workers
	if o.Workers > 0 {
		opts.Workers = o.Workers
	}
	return opts, nil
}

func parseOptionalRange(key, s string) (*filter.Range, error) {
	if s == "" {
		return nil, nil
	}
	r, err := filter.ParseRange(s)
	if err != nil {
		return nil, &filter.ConfigError{Key: key, Err: err}
	}
	return r, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
