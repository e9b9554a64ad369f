package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxValveIDLength bounds identifiers accepted from flags and query strings.
const maxValveIDLength = 64

// valveIDRegex matches identifiers the record grammar can produce.
var valveIDRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateValveID validates a valve identifier supplied outside the record
// stream, such as the --entry flag or the ?entry= query parameter.
func ValidateValveID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidValve, "valve ID cannot be empty")
	}
	if len(id) > maxValveIDLength {
		return New(ErrCodeInvalidValve, "valve ID too long (max %d characters)", maxValveIDLength)
	}
	if !valveIDRegex.MatchString(id) {
		return New(ErrCodeInvalidValve, "invalid valve ID: %q", id)
	}
	return nil
}

// ValidateInputPath validates an input path given on the command line.
// The special path "-" selects standard input.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if path == "-" {
		return nil
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateRedisURL checks that a cache URL uses a redis scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "redis URL must use redis or rediss scheme")
	}
	return nil
}
