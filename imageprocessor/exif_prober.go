package imageprocessor

import (
	"fmt"
	"sync"

	"github.com/barasher/go-exiftool"

	"imagefilter/types"
)

// ExifProber reads ImageWidth and ImageHeight through a long-running exiftool process
type ExifProber struct {
	et *exiftool.Exiftool
	mu sync.Mutex
}

// NewExifProber starts exiftool. It fails when the binary is not installed.
func NewExifProber() (*ExifProber, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exiftool: %w", err)
	}
	return &ExifProber{et: et}, nil
}

// Probe extracts the size tags for a single file
func (p *ExifProber) Probe(path string) (types.Dimensions, error) {
	// exiftool talks over a single stdin/stdout pair
	p.mu.Lock()
	fileInfos := p.et.ExtractMetadata(path)
	p.mu.Unlock()

	if len(fileInfos) == 0 {
		return types.Dimensions{}, fmt.Errorf("no metadata extracted: %s", path)
	}
	fileInfo := fileInfos[0]
	if fileInfo.Err != nil {
		return types.Dimensions{}, newProbeError("error extracting metadata", path, fileInfo.Err)
	}

	width, err := fileInfo.GetInt("ImageWidth")
	if err != nil {
		return types.Dimensions{}, newProbeError("missing ImageWidth", path, err)
	}
	height, err := fileInfo.GetInt("ImageHeight")
	if err != nil {
		return types.Dimensions{}, newProbeError("missing ImageHeight", path, err)
	}
	if width < 0 || height < 0 {
		return types.Dimensions{}, fmt.Errorf("invalid dimensions %dx%d: %s", width, height, path)
	}

	return types.Dimensions{Width: uint32(width), Height: uint32(height)}, nil
}

// Close stops the exiftool process
func (p *ExifProber) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.et.Close()
}
