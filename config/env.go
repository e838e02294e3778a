package config

import (
	"os"
	"strconv"
)

// Environment variables read by LoadFromEnv and DefaultPath
const (
	EnvConfig   = "IMAGEFILTER_CONFIG"
	EnvRoot     = "IMAGEFILTER_ROOT"
	EnvMetadata = "IMAGEFILTER_METADATA"
	EnvWorkers  = "IMAGEFILTER_WORKERS"
)

// LoadFromEnv overrides configuration values from environment variables
func LoadFromEnv(cfg *Config) {
	if root := os.Getenv(EnvRoot); root != "" {
		cfg.RootImagesDir = root
	}

	if metadataPath := os.Getenv(EnvMetadata); metadataPath != "" {
		cfg.MetadataPath = metadataPath
	}

	if workers := os.Getenv(EnvWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w >= 0 {
			cfg.Workers = w
		}
	}
}

// GetEnvOrDefault returns environment variable or default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
