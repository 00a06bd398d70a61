// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLessonID is the sentinel error wrapped by InvalidLessonIDError.
var ErrInvalidLessonID = errors.New("invalid lesson id")

type (
	// LessonID is the externally visible identifier of a lesson. It is always
	// the exact base name of the lesson directory: case-sensitive and never
	// normalized.
	LessonID string

	// InvalidLessonIDError is returned when a LessonID cannot name a direct
	// child directory of the content root.
	InvalidLessonIDError struct {
		Value  LessonID
		Reason string
	}
)

// String returns the string representation of the LessonID.
func (id LessonID) String() string { return string(id) }

// Validate reports whether the id can name a single directory entry. Empty
// ids, "." and "..", and ids containing path separators are rejected so a
// caller-supplied id can never escape the content root.
func (id LessonID) Validate() error {
	s := string(id)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidLessonIDError{Value: id, Reason: "must be non-empty"}
	case s == "." || s == "..":
		return &InvalidLessonIDError{Value: id, Reason: "must not be a relative directory reference"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidLessonIDError{Value: id, Reason: "must not contain path separators"}
	case strings.ContainsRune(s, 0):
		return &InvalidLessonIDError{Value: id, Reason: "must not contain NUL bytes"}
	}
	return nil
}

// Error implements the error interface for InvalidLessonIDError.
func (e *InvalidLessonIDError) Error() string {
	return fmt.Sprintf("invalid lesson id %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidLessonID for errors.Is() compatibility.
func (e *InvalidLessonIDError) Unwrap() error { return ErrInvalidLessonID }
