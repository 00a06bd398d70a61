// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

type (
	// Report counts what a full walk of the content root found. It is
	// computed on demand and never stored.
	Report struct {
		Root       types.FilesystemPath `json:"root" yaml:"root"`
		Precedence lesson.Kind          `json:"precedence" yaml:"precedence"`

		TotalDirs       int `json:"total_dirs" yaml:"total_dirs"`
		WithDataFile    int `json:"with_data_file" yaml:"with_data_file"`
		WithoutDataFile int `json:"without_data_file" yaml:"without_data_file"`
		LessonFiles     int `json:"lesson_files" yaml:"lesson_files"`
		TrainingFiles   int `json:"training_files" yaml:"training_files"`
		BothFiles       int `json:"both_files" yaml:"both_files"`
		Parsed          int `json:"parsed" yaml:"parsed"`
		Failed          int `json:"failed" yaml:"failed"`

		Outcomes    []Outcome    `json:"outcomes" yaml:"outcomes"`
		Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	}

	// Outcome is the per-directory detail behind the counters.
	Outcome struct {
		ID       types.LessonID `json:"id" yaml:"id"`
		Present  []lesson.Kind  `json:"present" yaml:"present"`
		Selected lesson.Kind    `json:"selected" yaml:"selected"`
		Parsed   bool           `json:"parsed" yaml:"parsed"`
		Items    int            `json:"items,omitempty" yaml:"items,omitempty"`
		Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
	}
)

// Diagnose walks every lesson directory, recording which data files exist and
// whether the selected one parses. Bad files are counted, never returned as
// errors; only failing to read the content root fails the call.
func (d *Discovery) Diagnose(ctx context.Context) (*Report, error) {
	start := time.Now()

	lessons, err := d.Lessons()
	if err != nil {
		return nil, err
	}

	r := &Report{
		Root:       d.root,
		Precedence: d.selector.Preferred(),
		Outcomes:   []Outcome{},
	}
	for dir := range lessons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.add(d.inspect(dir))
	}

	d.logger.Info("diagnose complete",
		"dirs", r.TotalDirs,
		"with_data_file", r.WithDataFile,
		"parsed", r.Parsed,
		"failed", r.Failed,
		"discrepancy", r.Discrepancy(),
		"duration", time.Since(start))
	return r, nil
}

func (r *Report) add(in inspection) {
	r.TotalDirs++
	out := Outcome{ID: in.dir.ID, Present: in.sel.Present, Selected: in.sel.Kind}
	if out.Present == nil {
		out.Present = []lesson.Kind{}
	}
	r.Diagnostics = append(r.Diagnostics, in.warnings...)

	hasLesson, hasTraining := in.sel.Has(lesson.KindLesson), in.sel.Has(lesson.KindTraining)
	if hasLesson {
		r.LessonFiles++
	}
	if hasTraining {
		r.TrainingFiles++
	}
	if hasLesson && hasTraining {
		r.BothFiles++
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeBothDataFiles,
			Lesson:   in.dir.ID,
			Message:  fmt.Sprintf("both %s and %s present; using %s", lesson.LessonFileName, lesson.TrainingFileName, in.sel.Kind.FileName()),
		})
	}

	switch {
	case !in.sel.Found():
		r.WithoutDataFile++
		r.Diagnostics = append(r.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeDataFileMissing,
			Lesson:   in.dir.ID,
			Message:  "no lesson.json or training.json",
		})
	case in.err != nil:
		r.WithDataFile++
		r.Failed++
		out.Error = in.err.Error()
		r.Diagnostics = append(r.Diagnostics, in.failure())
	default:
		r.WithDataFile++
		r.Parsed++
		out.Parsed = true
		out.Items = len(in.rec.Items)
	}
	r.Outcomes = append(r.Outcomes, out)
}

// Discrepancy is the number of directories that have a data file but did not
// parse. Zero means every present file is well-formed.
func (r *Report) Discrepancy() int {
	return r.WithDataFile - r.Parsed
}

// Format writes the plain-text report.
func (r *Report) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Content root:\t%s\n", r.Root)
	fmt.Fprintf(tw, "Precedence:\t%s first\n", r.Precedence.FileName())
	fmt.Fprintf(tw, "Directories:\t%d\n", r.TotalDirs)
	fmt.Fprintf(tw, "  with data file:\t%d\n", r.WithDataFile)
	fmt.Fprintf(tw, "  without data file:\t%d\n", r.WithoutDataFile)
	fmt.Fprintf(tw, "  %s:\t%d\n", lesson.LessonFileName, r.LessonFiles)
	fmt.Fprintf(tw, "  %s:\t%d\n", lesson.TrainingFileName, r.TrainingFiles)
	fmt.Fprintf(tw, "  both:\t%d\n", r.BothFiles)
	fmt.Fprintf(tw, "Parsed:\t%d\n", r.Parsed)
	fmt.Fprintf(tw, "Failed:\t%d\n", r.Failed)
	fmt.Fprintf(tw, "Discrepancy:\t%d\n", r.Discrepancy())
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Failed == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nFailures:"); err != nil {
		return err
	}
	for _, o := range r.Outcomes {
		if o.Parsed || o.Error == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s (%s): %s\n", o.ID, o.Selected.FileName(), o.Error); err != nil {
			return err
		}
	}
	return nil
}
