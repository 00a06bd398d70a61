// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gatewaynode/flashbrain/internal/discovery"
	"github.com/gatewaynode/flashbrain/pkg/lesson"
)

const (
	formatText outputFormat = iota
	formatJSON
	formatYAML

	// maxCellWidth truncates long text cells in tables.
	maxCellWidth = 48
)

type (
	outputFormat int

	// formatFlags are the --json / --yaml switches shared by the read commands.
	formatFlags struct {
		json bool
		yaml bool
	}

	// pacingView is the machine-readable form of lesson.Pacing with
	// durations in milliseconds.
	pacingView struct {
		ItemID      string `json:"item_id" yaml:"item_id"`
		Words       int    `json:"words" yaml:"words"`
		DisplayMS   int64  `json:"display_ms" yaml:"display_ms"`
		HighlightMS int64  `json:"highlight_ms" yaml:"highlight_ms"`
	}

	// loadView is what `load --pacing` emits in JSON and YAML modes.
	loadView struct {
		Lesson *lesson.Record `json:"lesson" yaml:"lesson"`
		Pacing []pacingView   `json:"pacing" yaml:"pacing"`
	}
)

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "print YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func (f *formatFlags) format() outputFormat {
	switch {
	case f.json:
		return formatJSON
	case f.yaml:
		return formatYAML
	default:
		return formatText
	}
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %d", format)
	}
}

// newTable returns a lipgloss table with the CLI's border and header styling.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

func renderSummaries(w io.Writer, root string, summaries []lesson.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintf(w, "No lessons found in %s\n", root)
		return err
	}
	t := newTable("ID", "TITLE", "DATE", "DESCRIPTION")
	for _, s := range summaries {
		t.Row(s.ID, s.Title, s.Date, truncate(s.Description, maxCellWidth))
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.Render(),
		SubtitleStyle.Render(fmt.Sprintf("%d lesson(s) in %s", len(summaries), root)))
	return err
}

func renderRecord(w io.Writer, rec *lesson.Record) error {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(rec.Meta.Title))
	sb.WriteString(" ")
	sb.WriteString(CmdStyle.Render("(" + rec.Meta.ID + ")"))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render(rec.Meta.Date + " | " + rec.Meta.Description))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d item(s), %d flash action(s), %gs per word",
		len(rec.Items), rec.FlashCount(), rec.Meta.SecondsPerWord)))
	sb.WriteString("\n")

	if len(rec.Items) > 0 {
		t := newTable("#", "ITEM", "TITLE", "TEXT")
		for i, it := range rec.Items {
			title := it.Title
			if it.Acronym != "" {
				title += " [" + it.Acronym + "]"
			}
			t.Row(strconv.Itoa(i+1), it.ItemID, title, truncate(it.Text, maxCellWidth))
		}
		sb.WriteString(t.Render())
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderPacing(w io.Writer, rec *lesson.Record) error {
	t := newTable("#", "ITEM", "WORDS", "DISPLAY", "PER WORD")
	for i, p := range rec.Pacing() {
		t.Row(strconv.Itoa(i+1), p.ItemID, strconv.Itoa(p.Words),
			p.Display.Round(time.Millisecond).String(),
			p.Highlight.Round(time.Millisecond).String())
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", TitleStyle.Render(rec.Meta.Title), t.Render())
	return err
}

func newLoadView(rec *lesson.Record) loadView {
	pacing := rec.Pacing()
	v := loadView{Lesson: rec, Pacing: make([]pacingView, 0, len(pacing))}
	for _, p := range pacing {
		v.Pacing = append(v.Pacing, pacingView{
			ItemID:      p.ItemID,
			Words:       p.Words,
			DisplayMS:   p.Display.Milliseconds(),
			HighlightMS: p.Highlight.Milliseconds(),
		})
	}
	return v
}

// renderReport writes the plain report followed by per-lesson warnings.
func renderReport(w io.Writer, r *discovery.Report) error {
	if _, err := fmt.Fprintln(w, TitleStyle.Render("Lesson content diagnostics")); err != nil {
		return err
	}
	if err := r.Format(w); err != nil {
		return err
	}

	var warnings []discovery.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == discovery.SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	if len(warnings) > 0 {
		if _, err := fmt.Fprintln(w, "\nWarnings:"); err != nil {
			return err
		}
		for _, d := range warnings {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", d.Lesson, d.Message); err != nil {
				return err
			}
		}
	}

	status := SuccessStyle.Render("All data files parsed.")
	if r.Discrepancy() > 0 {
		status = ErrorStyle.Render(fmt.Sprintf("%d data file(s) failed to parse.", r.Discrepancy()))
	}
	_, err := fmt.Fprintf(w, "\n%s\n", status)
	return err
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
