package errors

import (
	"strings"
	"unicode"
)

// maxColumnName bounds column names accepted from command lines and config files.
const maxColumnName = 256

// ValidateColumnName validates a dataset column name supplied by a user.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Whether the column exists is checked by the dataset, not here.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > maxColumnName {
		return New(ErrCodeInvalidColumn, "column name too long (max %d characters)", maxColumnName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateGroupKey validates a style group key taken from a style document.
// Keys may contain any printable text, including the "|" separator, but
// never control characters.
func ValidateGroupKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidStyleDocument, "group key cannot be empty")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStyleDocument, "group key %q contains control characters", key)
		}
	}
	return nil
}
