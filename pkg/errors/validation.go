package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateLanguage checks that code is a two-letter lowercase language code
// such as "en" or "ro".
func ValidateLanguage(code string) error {
	if len(code) != 2 {
		return New(ErrCodeInvalidLanguage, "language must be a two-letter code, got %q", code)
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return New(ErrCodeInvalidLanguage, "language must be lowercase letters, got %q", code)
		}
	}
	return nil
}

// ValidateOutputPath rejects output paths with control characters or a
// trailing separator. Relative and absolute paths are both accepted.
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains control characters")
		}
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}
	return nil
}
