package scanner

import (
	"path/filepath"
	"strings"
)

// supportedExtensions is the fixed set of image extensions the tool lists
var supportedExtensions = []string{"gif", "jpeg", "jpg", "png", "webp"}

// IsImageFile checks if the final path segment ends in a supported image extension.
// The comparison ignores case.
func IsImageFile(path string) bool {
	name := baseName(path)
	if name == "" {
		return false
	}

	lower := strings.ToLower(name)
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return true
		}
	}
	return false
}

// GetFileFormat returns the lowercase extension of a supported image without the dot,
// or an empty string for anything else
func GetFileFormat(path string) string {
	lower := strings.ToLower(baseName(path))
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(lower, "."+ext) {
			return ext
		}
	}
	return ""
}

// SupportedExtensions returns a copy of the supported extensions
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// baseName returns the final path segment, or "" when the path ends in a separator
func baseName(path string) string {
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return ""
	}
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
