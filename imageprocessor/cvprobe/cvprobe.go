// Package cvprobe reads image dimensions by fully decoding the file with OpenCV.
// It is slower than the header prober and is meant as the last fallback.
package cvprobe

import (
	"fmt"

	"gocv.io/x/gocv"

	"imagefilter/types"
)

// Prober decodes images with gocv
type Prober struct {
	flags gocv.IMReadFlag
}

// New creates an OpenCV prober
func New() *Prober {
	return &Prober{flags: gocv.IMReadUnchanged}
}

// Probe loads the image and reports its columns and rows
func (p *Prober) Probe(path string) (types.Dimensions, error) {
	img := gocv.IMRead(path, p.flags)
	defer img.Close()

	if img.Empty() {
		return types.Dimensions{}, fmt.Errorf("failed to load image: %s", path)
	}

	return types.Dimensions{Width: uint32(img.Cols()), Height: uint32(img.Rows())}, nil
}
