package main

import (
	"go.uber.org/zap"

	"imagefilter/config"
	"imagefilter/imageprocessor"
	"imagefilter/imageprocessor/cvprobe"
)

// buildProbers assembles the dimension probe chain named in the configuration.
// The header prober is tried first for its format; exif and opencv act as fallbacks.
// An empty list yields just the header prober.
func buildProbers(names []string, logger *zap.Logger) *imageprocessor.ProberRegistry {
	if len(names) == 0 {
		return imageprocessor.NewProberRegistry()
	}

	registry := imageprocessor.NewEmptyProberRegistry()
	for _, name := range names {
		switch name {
		case config.ProberHeader:
			registry.RegisterSupported(imageprocessor.NewHeaderProber())
		case config.ProberExif:
			if !imageprocessor.HasExiftool() {
				logger.Warn("exiftool not found on PATH, exif prober disabled")
				continue
			}
			p, err := imageprocessor.NewExifProber()
			if err != nil {
				logger.Warn("exif prober disabled", zap.Error(err))
				continue
			}
			registry.RegisterFallback(p)
		case config.ProberOpenCV:
			registry.RegisterFallback(cvprobe.New())
		}
		logger.Debug("registered prober", zap.String("prober", name))
	}
	return registry
}
