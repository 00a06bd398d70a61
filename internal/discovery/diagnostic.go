// SPDX-License-Identifier: MPL-2.0

package discovery

import "github.com/gatewaynode/flashbrain/pkg/types"

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a lesson that was dropped from the result.
	SeverityError Severity = "error"
)

const (
	// CodeLessonReadFailed marks a data file that exists but could not be read.
	CodeLessonReadFailed = "lesson_read_failed"
	// CodeLessonSchemaInvalid marks a data file that failed to parse or validate.
	CodeLessonSchemaInvalid = "lesson_schema_invalid"
	// CodeDataFileMissing marks a lesson directory with no data file.
	CodeDataFileMissing = "data_file_missing"
	// CodeLessonIDMismatch marks a data file whose declared id differs from
	// its directory name. The directory name is used.
	CodeLessonIDMismatch = "lesson_id_mismatch"
	// CodeBothDataFiles marks a directory holding both layouts.
	CodeBothDataFiles = "both_data_files"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity `json:"severity" yaml:"severity"`
		// Code is a machine-readable identifier (e.g., "lesson_schema_invalid").
		Code string `json:"code" yaml:"code"`
		// Lesson is the lesson the diagnostic refers to.
		Lesson types.LessonID `json:"lesson" yaml:"lesson"`
		// Message is the human-readable description.
		Message string `json:"message" yaml:"message"`
		// Path is the file path associated with this diagnostic (optional).
		Path types.FilesystemPath `json:"path,omitempty" yaml:"path,omitempty"`
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error `json:"-" yaml:"-"`
	}
)

// HasCode reports whether any diagnostic carries the given code.
func HasCode(diags []Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}
