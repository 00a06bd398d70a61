// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when a document exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

type (
	// ValidationError describes every schema violation found in one document.
	ValidationError struct {
		// FilePath is the file being validated.
		FilePath string
		// Issues lists the violations in the order CUE reported them.
		Issues []Issue
	}

	// Issue is a single schema violation.
	Issue struct {
		// Path is the JSON path to the invalid value (e.g., "items[0].actions[1].payload").
		// Empty for document-level problems such as malformed JSON.
		Path string
		// Message is the validation message without the path prefix.
		Message string
	}

	// FileTooLargeError is returned by CheckFileSize.
	FileTooLargeError struct {
		FilePath string
		Size     int64
		MaxSize  int64
	}
)

// Error implements the error interface.
//
// Format: <file-path>: <json-path>: <message> for a single issue, and a
// "validation failed" header followed by one indented line per issue otherwise.
func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		lines = append(lines, is.String())
	}
	switch len(lines) {
	case 0:
		return fmt.Sprintf("%s: validation failed", e.FilePath)
	case 1:
		return fmt.Sprintf("%s: %s", e.FilePath, lines[0])
	default:
		return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
	}
}

// Paths returns the JSON paths of all issues that carry one.
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path != "" {
			paths = append(paths, is.Path)
		}
	}
	return paths
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.FilePath, e.Size, e.MaxSize)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError converts a CUE error into a *ValidationError whose issues carry
// JSON-path prefixes.
//
// Examples:
//   - lesson.json: meta.seconds_per_word: conflicting values "fast" and number
//   - training.json: items[2].actions[0].payload.duration: incomplete value int
//
// Errors that did not come from CUE are wrapped with the file path instead.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	ve := &ValidationError{FilePath: filePath}
	seen := make(map[string]bool, len(cueErrs))
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		// CUE sometimes repeats the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		is := Issue{Path: pathStr, Message: msg}
		if seen[is.String()] {
			continue
		}
		seen[is.String()] = true
		ve.Issues = append(ve.Issues, is)
	}
	return ve
}

// formatPath converts a CUE error path (["items", "0", "text"]) to JSON-path
// notation ("items[0].text"). Purely numeric elements are array indices.
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		// Definition names are schema internals, not document fields
		if strings.HasPrefix(part, "#") {
			continue
		}
		if isIndex(part) && result.Len() > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
			continue
		}
		if result.Len() > 0 && i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}

	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize verifies that data does not exceed maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return &FileTooLargeError{FilePath: filename, Size: int64(len(data)), MaxSize: maxSize}
	}
	return nil
}
