package filter

import (
	"errors"
	"fmt"
)

// Fatal error kinds. Each one aborts a run before any output is produced.
var (
	ErrMissingDirectory      = errors.New("could not find directory")
	ErrMissingMetadataSource = errors.New("no metadata file provided")
	ErrConfig                = errors.New("configuration error")
)

// MetadataLoadError reports a metadata file that is missing, unreadable or malformed
type MetadataLoadError struct {
	Path string
	Err  error
}

func (e *MetadataLoadError) Error() string {
	return fmt.Sprintf("cannot load metadata file %s: %v", e.Path, e.Err)
}

func (e *MetadataLoadError) Unwrap() error { return e.Err }

// ConfigError reports an absent or invalid configuration value.
// It matches ErrConfig with errors.Is.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func missingDirectory(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingDirectory, path)
}
