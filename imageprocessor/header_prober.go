package imageprocessor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"

	"imagefilter/types"
)

// HeaderProber reads dimensions from the image header without decoding pixels
type HeaderProber struct{}

// NewHeaderProber creates a new header prober for gif, jpeg, png and webp
func NewHeaderProber() *HeaderProber {
	return &HeaderProber{}
}

// Probe decodes only the image configuration
func (p *HeaderProber) Probe(path string) (types.Dimensions, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Dimensions{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return types.Dimensions{}, newProbeError("failed to decode image header", path, err)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return types.Dimensions{}, fmt.Errorf("invalid %s dimensions %dx%d: %s", format, cfg.Width, cfg.Height, path)
	}

	return types.Dimensions{Width: uint32(cfg.Width), Height: uint32(cfg.Height)}, nil
}
