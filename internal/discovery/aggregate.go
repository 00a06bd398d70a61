// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

type (
	// ListResult bundles lesson summaries with diagnostics for lessons that
	// were dropped or loaded with warnings.
	ListResult struct {
		Summaries   []lesson.Summary
		Diagnostics []Diagnostic
		// Dirs is the number of lesson directories visited.
		Dirs int
	}

	// inspection is the per-directory outcome shared by listing and diagnostics.
	inspection struct {
		dir      LessonDir
		sel      Selection
		path     types.FilesystemPath
		rec      *lesson.Record
		err      error
		warnings []Diagnostic
	}
)

// ListLessons visits every lesson directory once, in enumeration order, and
// returns a summary for each one whose data file parses. Directories without a
// data file are skipped; unreadable or invalid files are dropped and reported
// as diagnostics. Only failing to read the content root fails the call.
func (d *Discovery) ListLessons(ctx context.Context) (ListResult, error) {
	start := time.Now()

	lessons, err := d.Lessons()
	if err != nil {
		return ListResult{}, err
	}

	res := ListResult{Summaries: []lesson.Summary{}}
	for dir := range lessons {
		if err := ctx.Err(); err != nil {
			return ListResult{}, err
		}
		res.Dirs++

		in := d.inspect(dir)
		res.Diagnostics = append(res.Diagnostics, in.warnings...)
		switch {
		case !in.sel.Found():
			d.logger.Debug("lesson skipped", "lesson", dir.ID, "code", CodeDataFileMissing)
		case in.err != nil:
			diag := in.failure()
			d.logger.Info("lesson skipped", "lesson", dir.ID, "code", diag.Code, "error", in.err)
			res.Diagnostics = append(res.Diagnostics, diag)
		default:
			res.Summaries = append(res.Summaries, in.rec.Summary())
		}
	}

	d.logger.Info("listing complete",
		"lessons", len(res.Summaries),
		"dirs", res.Dirs,
		"duration", time.Since(start))
	return res, nil
}

// LoadLesson returns the full record for one lesson. The record's ID is the
// directory name.
//
// Errors: *LessonNotFoundError for a malformed id or a missing directory,
// *DataFileNotFoundError when the directory has no data file, *ReadError for
// I/O failures and *lesson.SchemaError for invalid content.
func (d *Discovery) LoadLesson(ctx context.Context, id types.LessonID) (*lesson.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, &LessonNotFoundError{ID: id, Root: d.root, Err: err}
	}

	info, err := d.fs.Stat(string(id))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, &LessonNotFoundError{ID: id, Root: d.root}
	case err != nil:
		return nil, &ReadError{Path: d.absPath(string(id)), Err: err}
	case !info.IsDir():
		return nil, &LessonNotFoundError{ID: id, Root: d.root}
	}

	in := d.inspect(LessonDir{ID: id, Path: string(id)})
	for _, w := range in.warnings {
		d.logger.Warn(w.Message, "lesson", id, "code", w.Code)
	}
	if !in.sel.Found() {
		return nil, &DataFileNotFoundError{ID: id, Path: d.absPath(string(id))}
	}
	if in.err != nil {
		return nil, in.err
	}
	return in.rec, nil
}

// inspect selects, reads and parses the data file of one lesson directory.
func (d *Discovery) inspect(dir LessonDir) inspection {
	in := inspection{dir: dir, sel: d.selector.Select(d.fs, dir.Path)}
	if !in.sel.Found() {
		return in
	}
	in.path = d.absPath(in.sel.Path)

	data, err := d.readDataFile(in.sel)
	if err != nil {
		in.err = err
		return in
	}

	rec, err := lesson.Parse(data, in.sel.Kind, string(in.path))
	if err != nil {
		in.err = err
		return in
	}

	if rec.Meta.ID != "" && rec.Meta.ID != string(dir.ID) {
		in.warnings = append(in.warnings, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeLessonIDMismatch,
			Lesson:   dir.ID,
			Message:  fmt.Sprintf("declared id %q differs from directory name %q; using directory name", rec.Meta.ID, dir.ID),
			Path:     in.path,
		})
	}
	rec.Meta.ID = string(dir.ID)
	in.rec = rec

	d.logger.Debug("lesson parsed", "lesson", dir.ID, "kind", in.sel.Kind, "items", len(rec.Items))
	return in
}

// failure converts a read or parse error into a diagnostic.
func (in inspection) failure() Diagnostic {
	code := CodeLessonSchemaInvalid
	if errors.Is(in.err, ErrLessonRead) {
		code = CodeLessonReadFailed
	}
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Lesson:   in.dir.ID,
		Message:  in.err.Error(),
		Path:     in.path,
		Cause:    in.err,
	}
}
