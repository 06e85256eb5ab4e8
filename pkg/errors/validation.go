package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputPath validates an output document path before a run starts.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Must name a file, not a directory (no trailing separator, not "." or "..")
//   - Maximum length of 1024 characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	switch filepath.Base(path) {
	case ".", "..":
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// ValidateColorComponent checks that an RGB component lies in [0, 1].
func ValidateColorComponent(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidSettings, "%s must be between 0 and 1, got %g", name, v)
	}
	return nil
}

// ValidateCopies checks the copy count for the duplicate command.
func ValidateCopies(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "number of copies must be at least 1, got %d", n)
	}
	const maxCopies = 1000
	if n > maxCopies {
		return New(ErrCodeInvalidInput, "number of copies too large (max %d)", maxCopies)
	}
	return nil
}
