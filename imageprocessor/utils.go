package imageprocessor

import (
	"fmt"
	"os/exec"
)

// HasExiftool reports whether the exiftool binary is on PATH
func HasExiftool() bool {
	_, err := exec.LookPath("exiftool")
	return err == nil
}

// newProbeError creates a standardized error for probe failures
func newProbeError(message, path string, err error) error {
	return fmt.Errorf("%s: %s: %w", message, path, err)
}
