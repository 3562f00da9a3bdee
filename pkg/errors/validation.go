package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds page names and file prefixes.
const maxNameLength = 128

// ValidateFilePrefix validates the prefix of an exported file name.
// The prefix ends up in a Content-Disposition header and on disk, so it must be a
// plain basename:
//   - No empty prefixes
//   - No control characters or quotes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateFilePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidInput, "file prefix cannot be empty")
	}
	if len(prefix) > maxNameLength {
		return New(ErrCodeInvalidInput, "file prefix too long (max %d characters)", maxNameLength)
	}
	for _, r := range prefix {
		if unicode.IsControl(r) || r == '"' {
			return New(ErrCodeInvalidInput, "file prefix contains invalid characters")
		}
	}
	if strings.ContainsAny(prefix, "/\\") || strings.Contains(prefix, "..") {
		return New(ErrCodeInvalidPath, "file prefix cannot contain path components: %q", prefix)
	}
	return nil
}

// ValidatePageName validates a workspace name used as a page title.
func ValidatePageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "page name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "page name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidInput, "page name contains invalid control characters")
		}
	}
	return nil
}

// ValidateInputPath checks that path names a supported document file.
// Supported extensions are .json, .yaml and .yml.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported input extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}
