// Package validation checks user-supplied destination paths and free-text
// input before passforge writes a password anywhere.
package validation

import (
	"path/filepath"
	"strings"

	perrors "github.com/conneroisu/passforge/internal/errors"
)

var restrictedPaths = []string{
	"/etc/",
	"/proc/",
	"/sys/",
	"/dev/",
	"/boot/",
}

var dangerousPathChars = []string{";", "&", "|", "$", "`", "<", ">", "\x00"}

// ValidatePath validates a destination file path. Relative paths must stay
// inside the working directory; absolute paths may not point into system
// directories.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return perrors.ErrInvalidPath(path).WithContext("reason", "empty")
	}

	for _, char := range dangerousPathChars {
		if strings.Contains(path, char) {
			return perrors.ErrInvalidPath(path).
				WithContext("reason", "dangerous character").
				WithContext("char", char)
		}
	}

	cleanPath := filepath.Clean(path)

	if !filepath.IsAbs(cleanPath) {
		if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
			return perrors.ErrPathTraversal(path)
		}
		return nil
	}

	lower := strings.ToLower(filepath.ToSlash(cleanPath)) + "/"
	for _, restricted := range restrictedPaths {
		if strings.HasPrefix(lower, restricted) {
			return perrors.NewSecurityError(
				perrors.ErrCodeInvalidPath,
				"access to restricted path denied: "+path,
			)
		}
	}

	return nil
}

// EnsureExtension appends ext to name unless name already ends with it
// (case-insensitively).
func EnsureExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}
	return name + ext
}

// SanitizeInput removes null bytes and control characters other than tab
// from a line of user input and trims the trailing newline.
func SanitizeInput(input string) string {
	input = strings.TrimRight(input, "\r\n")

	var sanitized strings.Builder
	for _, r := range input {
		if r >= 32 && r != 127 || r == '\t' {
			sanitized.WriteRune(r)
		}
	}

	return sanitized.String()
}
