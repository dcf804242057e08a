package errors

import (
	"strings"
	"unicode"
)

// ValidateGraphName validates a stored-graph name for safety and correctness.
// Names are used as Mongo document keys, cache keys, and output file names,
// so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidName, "graph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "graph name contains control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "graph name cannot contain path components")
	}

	return nil
}

// ValidateVertexID validates a vertex identifier from external input
// (JSON graphs, TOML manifests, API requests).
//
// Validation rules:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidVertex, "vertex id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidVertex, "vertex id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVertex, "vertex id contains control characters")
		}
	}
	return nil
}

// ValidatePath validates an input file path for safety. It prevents null
// bytes and unreasonable lengths; relative and absolute paths are both
// accepted since the CLI reads user-named files.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "path contains a null byte")
		}
	}

	return nil
}
