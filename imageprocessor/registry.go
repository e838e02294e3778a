package imageprocessor

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"imagefilter/scanner"
	"imagefilter/types"
)

// ProberRegistry maps image formats to an ordered chain of probers
type ProberRegistry struct {
	probers  map[string][]Prober
	fallback []Prober
	mutex    sync.RWMutex
}

// NewProberRegistry creates a registry with the header prober registered for every supported format
func NewProberRegistry() *ProberRegistry {
	registry := NewEmptyProberRegistry()
	registry.RegisterSupported(NewHeaderProber())
	return registry
}

// NewEmptyProberRegistry creates a registry with no probers
func NewEmptyProberRegistry() *ProberRegistry {
	return &ProberRegistry{
		probers: make(map[string][]Prober),
	}
}

// RegisterSupported appends a prober to the chain of every supported image format
func (r *ProberRegistry) RegisterSupported(p Prober) {
	for _, format := range scanner.SupportedExtensions() {
		r.RegisterProber(format, p)
	}
}

// RegisterProber appends a prober to the chain for a format (extension without the dot)
func (r *ProberRegistry) RegisterProber(format string, p Prober) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	format = strings.TrimPrefix(strings.ToLower(format), ".")
	r.probers[format] = append(r.probers[format], p)
}

// RegisterFallback appends a prober tried after the format chain for every format
func (r *ProberRegistry) RegisterFallback(p Prober) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.fallback = append(r.fallback, p)
}

// CanProbe checks if any prober is registered for the file's format
func (r *ProberRegistry) CanProbe(path string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.probers[scanner.GetFileFormat(path)]) > 0 || len(r.fallback) > 0
}

// Probe tries each prober for the file's format in order and returns the first success
func (r *ProberRegistry) Probe(path string) (types.Dimensions, error) {
	r.mutex.RLock()
	chain := append([]Prober{}, r.probers[scanner.GetFileFormat(path)]...)
	chain = append(chain, r.fallback...)
	r.mutex.RUnlock()

	if len(chain) == 0 {
		return types.Dimensions{}, fmt.Errorf("no suitable prober found for: %s", path)
	}

	var errs []error
	for _, p := range chain {
		dims, err := p.Probe(path)
		if err == nil {
			return dims, nil
		}
		errs = append(errs, err)
	}
	return types.Dimensions{}, errors.Join(errs...)
}

// Close releases every registered prober that holds resources
func (r *ProberRegistry) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seen := make(map[io.Closer]bool)
	var errs []error
	closeOne := func(p Prober) {
		c, ok := p.(io.Closer)
		if !ok || seen[c] {
			return
		}
		seen[c] = true
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, chain := range r.probers {
		for _, p := range chain {
			closeOne(p)
		}
	}
	for _, p := range r.fallback {
		closeOne(p)
	}
	return errors.Join(errs...)
}
