// Package imageprocessor provides probes that report the pixel dimensions of image files.
package imageprocessor

import "imagefilter/types"

// Prober is the interface that all dimension probes must implement
type Prober interface {
	// Probe reads the width and height of the image at path
	Probe(path string) (types.Dimensions, error)
}

// ProberFunc adapts a plain function to the Prober interface
type ProberFunc func(path string) (types.Dimensions, error)

// Probe calls f(path)
func (f ProberFunc) Probe(path string) (types.Dimensions, error) {
	return f(path)
}
