package filter

import (
	"imagefilter/imageprocessor"
)

// MatchesDims reports whether the image at path lies within the width and height ranges.
// With both ranges nil it returns true without probing. An image whose
// dimensions cannot be probed never matches.
func MatchesDims(prober imageprocessor.Prober, path string, width, height *Range) bool {
	ok, _ := checkDims(prober, path, width, height)
	return ok
}

// checkDims is MatchesDims that also returns the probe error, if any
func checkDims(prober imageprocessor.Prober, path string, width, height *Range) (bool, error) {
	if width == nil && height == nil {
		return true, nil
	}

	dims, err := prober.Probe(path)
	if err != nil {
		return false, err
	}

	return width.Contains(dims.Width) && height.Contains(dims.Height), nil
}
