// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gatewaynode/flashbrain/pkg/types"
)

var (
	// ErrRootNotFound is returned when no content root candidate exists.
	ErrRootNotFound = errors.New("content root not found")

	// ErrDirectoryRead is returned when the content root cannot be listed.
	ErrDirectoryRead = errors.New("content root could not be read")

	// ErrLessonNotFound is returned when the requested lesson directory does not exist.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrDataFileNotFound is returned when a lesson directory has no data file.
	ErrDataFileNotFound = errors.New("lesson data file not found")

	// ErrLessonRead is returned when a data file exists but cannot be read.
	ErrLessonRead = errors.New("lesson data file could not be read")
)

type (
	// RootNotFoundError lists every location that was tried.
	RootNotFoundError struct {
		BaseDir types.FilesystemPath
		Tried   []types.FilesystemPath
	}

	// DirectoryReadError wraps the failure to list the content root.
	DirectoryReadError struct {
		Root types.FilesystemPath
		Err  error
	}

	// LessonNotFoundError is returned by LoadLesson for an unknown or invalid id.
	LessonNotFoundError struct {
		ID   types.LessonID
		Root types.FilesystemPath
		// Err is set when the id itself is malformed.
		Err error
	}

	// DataFileNotFoundError is returned by LoadLesson when neither lesson.json
	// nor training.json exists in the lesson directory.
	DataFileNotFoundError struct {
		ID   types.LessonID
		Path types.FilesystemPath
	}

	// ReadError wraps an I/O failure while reading a data file.
	ReadError struct {
		Path types.FilesystemPath
		Err  error
	}
)

// Error implements the error interface.
func (e *RootNotFoundError) Error() string {
	tried := make([]string, len(e.Tried))
	for i, p := range e.Tried {
		tried[i] = string(p)
	}
	return fmt.Sprintf("content root not found (base dir %s; tried: %s)", e.BaseDir, strings.Join(tried, ", "))
}

// Unwrap returns ErrRootNotFound for errors.Is() compatibility.
func (e *RootNotFoundError) Unwrap() error { return ErrRootNotFound }

// Error implements the error interface.
func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read content root %s: %v", e.Root, e.Err)
}

// Unwrap returns both ErrDirectoryRead and the underlying cause.
func (e *DirectoryReadError) Unwrap() []error { return []error{ErrDirectoryRead, e.Err} }

// Error implements the error interface.
func (e *LessonNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lesson %q not found: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("lesson %q not found in %s", e.ID, e.Root)
}

// Unwrap returns ErrLessonNotFound and, for malformed ids, the validation error.
func (e *LessonNotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrLessonNotFound, e.Err}
	}
	return []error{ErrLessonNotFound}
}

// Error implements the error interface.
func (e *DataFileNotFoundError) Error() string {
	return fmt.Sprintf("lesson %q has no lesson.json or training.json in %s", e.ID, e.Path)
}

// Unwrap returns ErrDataFileNotFound for errors.Is() compatibility.
func (e *DataFileNotFoundError) Unwrap() error { return ErrDataFileNotFound }

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrLessonRead and the underlying cause.
func (e *ReadError) Unwrap() []error { return []error{ErrLessonRead, e.Err} }
