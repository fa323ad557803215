package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDir validates a directory argument before it is scanned.
// Absolute and relative paths are both accepted; only empty values,
// control characters and overlong paths are rejected.
func ValidateDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return New(ErrCodeInvalidPath, "directory cannot be empty")
	}

	const maxPathLength = 4096
	if len(dir) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range dir {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// moduleExtRegex matches a file extension such as ".js" or ".mjs".
var moduleExtRegex = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// ValidateModuleExt validates the module file extension used to select
// build output files.
func ValidateModuleExt(ext string) error {
	if !moduleExtRegex.MatchString(ext) {
		return New(ErrCodeInvalidInput, "invalid module extension %q (want e.g. \".js\")", ext)
	}
	return nil
}

// specialIDRegex matches identifiers accepted by the specials API.
var specialIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSpecialID validates a special identifier before it is placed in a
// request path. It rejects anything that could escape the path segment.
func ValidateSpecialID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "special id cannot be empty")
	}
	if !specialIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid special id: %q", id)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
