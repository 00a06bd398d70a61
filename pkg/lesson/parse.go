// SPDX-License-Identifier: MPL-2.0

package lesson

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gatewaynode/flashbrain/pkg/cueutil"
)

// ErrSchema is the sentinel for data files that fail to parse or validate.
var (
	ErrSchema = errors.New("schema error")

	//go:embed lesson_schema.cue
	lessonSchema []byte
)

// SchemaError reports a data file that is malformed JSON, is missing required
// fields, has mistyped fields, or is too large. Path names the offending file.
type SchemaError struct {
	Path  string
	Kind  Kind
	Cause error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s file %s: %v", e.Kind, e.Path, e.Cause)
}

// Unwrap returns both ErrSchema and the underlying cause.
func (e *SchemaError) Unwrap() []error {
	return []error{ErrSchema, e.Cause}
}

// Decode validates data against the schema for kind and returns the decoded
// layout-specific value.
func Decode(data []byte, kind Kind, path string) (DataFile, error) {
	switch kind {
	case KindLesson:
		res, err := cueutil.ParseJSON[LessonFile](lessonSchema, data, "#Lesson", cueutil.WithFilename(path))
		if err != nil {
			return nil, &SchemaError{Path: path, Kind: kind, Cause: err}
		}
		if err := CheckSchemaVersion(res.Value.Meta.SchemaVersion); err != nil {
			return nil, &SchemaError{Path: path, Kind: kind, Cause: err}
		}
		return res.Value, nil
	case KindTraining:
		res, err := cueutil.ParseJSON[TrainingFile](lessonSchema, data, "#Training", cueutil.WithFilename(path))
		if err != nil {
			return nil, &SchemaError{Path: path, Kind: kind, Cause: err}
		}
		return res.Value, nil
	default:
		return nil, &SchemaError{Path: path, Kind: kind, Cause: fmt.Errorf("%w: %s", ErrInvalidKind, kind)}
	}
}

// Parse validates data against the schema for kind and returns the normalized
// record. Parsing is all-or-nothing: on error no record is returned.
func Parse(data []byte, kind Kind, path string) (*Record, error) {
	df, err := Decode(data, kind, path)
	if err != nil {
		return nil, err
	}
	return df.Normalize(), nil
}

// Marshal renders a record in the current lesson.json layout.
func Marshal(rec *Record) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}
