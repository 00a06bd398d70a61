// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gatewaynode/flashbrain/internal/config"
	"github.com/gatewaynode/flashbrain/internal/discovery"
	"github.com/gatewaynode/flashbrain/internal/issue"
	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

type (
	staticConfig struct {
		cfg *config.Config
		err error
	}

	fakeLessons struct {
		root    types.FilesystemPath
		list    discovery.ListResult
		record  *lesson.Record
		report  *discovery.Report
		loadErr error
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.LoadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &config.LoadResult{Config: s.cfg}, nil
}

func (f *fakeLessons) Root() types.FilesystemPath { return f.root }

func (f *fakeLessons) ListLessons(context.Context) (discovery.ListResult, error) {
	return f.list, nil
}

func (f *fakeLessons) LoadLesson(_ context.Context, id types.LessonID) (*lesson.Record, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.record, nil
}

func (f *fakeLessons) Diagnose(context.Context) (*discovery.Report, error) {
	return f.report, nil
}

// newTestApp returns an App whose lesson core is fake and records the root it
// was bound to.
func newTestApp(cfg *config.Config, fake *fakeLessons) (app *App, stdout, stderr *bytes.Buffer, boundRoot *types.FilesystemPath) {
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	boundRoot = new(types.FilesystemPath)
	app = NewApp(Dependencies{
		Config: staticConfig{cfg: cfg},
		Lessons: func(root types.FilesystemPath, _ *config.Config, _ *slog.Logger) LessonService {
			*boundRoot = root
			fake.root = root
			return fake
		},
		Stdout: stdout,
		Stderr: stderr,
	})
	return app, stdout, stderr, boundRoot
}

func TestRootFlagBeatsConfiguredRoot(t *testing.T) {
	t.Parallel()

	flagRoot := t.TempDir()
	cfgRoot := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ContentRoot = types.FilesystemPath(cfgRoot)

	app, stdout, _, bound := newTestApp(cfg, &fakeLessons{list: discovery.ListResult{Summaries: []lesson.Summary{}}})
	code := Run(context.Background(), app, []string{"--root", flagRoot, "lessons"})
	if code != types.ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if string(*bound) != flagRoot {
		t.Errorf("bound root = %q, want %q", *bound, flagRoot)
	}
	if !strings.Contains(stdout.String(), "No lessons found") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestConfiguredRootUsedWithoutFlag(t *testing.T) {
	t.Parallel()

	cfgRoot := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ContentRoot = types.FilesystemPath(cfgRoot)

	app, _, _, bound := newTestApp(cfg, &fakeLessons{list: discovery.ListResult{Summaries: []lesson.Summary{}}})
	if code := Run(context.Background(), app, []string{"lessons", "--json"}); code != types.ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if string(*bound) != cfgRoot {
		t.Errorf("bound root = %q, want %q", *bound, cfgRoot)
	}
}

func TestRootNotFoundFailsWithHelp(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.ContentRoot = types.FilesystemPath(filepath.Join(t.TempDir(), "missing"))

	app, _, stderr, bound := newTestApp(cfg, &fakeLessons{})
	code := Run(context.Background(), app, []string{"lessons"})
	if code != types.ExitFailure {
		t.Fatalf("exit code = %d, want %d", code, types.ExitFailure)
	}
	if *bound != "" {
		t.Errorf("lesson core was built for %q despite missing root", *bound)
	}
	out := stderr.String()
	for _, want := range []string{"failed to resolve the content root", "No lessons available"} {
		if !strings.Contains(out, want) {
			t.Errorf("stderr missing %q:\n%s", want, out)
		}
	}
}

func TestDiagnoseStrictExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report *discovery.Report
		want   types.ExitCode
	}{
		{"clean", &discovery.Report{TotalDirs: 1, WithDataFile: 1, Parsed: 1}, types.ExitOK},
		{"discrepancy", &discovery.Report{TotalDirs: 2, WithDataFile: 2, Parsed: 1, Failed: 1}, types.ExitDiscrepancy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.ContentRoot = types.FilesystemPath(t.TempDir())
			app, stdout, stderr, _ := newTestApp(cfg, &fakeLessons{report: tt.report})

			code := Run(context.Background(), app, []string{"diagnose", "--strict"})
			if code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
			if !strings.Contains(stdout.String(), "Discrepancy:") {
				t.Errorf("report not printed:\n%s", stdout.String())
			}
			if strings.Contains(stderr.String(), "exit status") {
				t.Errorf("silent exit error was printed: %q", stderr.String())
			}
		})
	}
}

func TestLoadErrorsAreActionable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"not found", &discovery.LessonNotFoundError{ID: "x"}, issue.LessonNotFoundId},
		{"no data file", &discovery.DataFileNotFoundError{ID: "x"}, issue.DataFileNotFoundId},
		{"schema", &lesson.SchemaError{Path: "x/lesson.json", Kind: lesson.KindLesson, Cause: errors.New("bad")}, issue.LessonSchemaErrorId},
		{"read", &discovery.ReadError{Path: "x/lesson.json", Err: os.ErrPermission}, issue.LessonReadFailedId},
		{"directory", &discovery.DirectoryReadError{Root: "r", Err: os.ErrPermission}, issue.DirectoryReadFailedId},
		{"root", &discovery.RootNotFoundError{}, issue.RootNotFoundId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := actionable("load lesson", "x", tt.err)
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("actionable() = %T, want *issue.ActionableError", err)
			}
			if ae.Issue != tt.want {
				t.Errorf("Issue = %v, want %v", ae.Issue, tt.want)
			}
			if !ae.HasSuggestions() {
				t.Error("expected at least one suggestion")
			}
			if !errors.Is(err, tt.err) {
				t.Error("cause lost in wrapping")
			}
		})
	}
}

func TestActionablePassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	plain := fmt.Errorf("plain")
	if got := actionable("op", "", plain); got != plain {
		t.Errorf("actionable(plain) = %v, want unchanged", got)
	}
	if got := actionable("op", "", nil); got != nil {
		t.Errorf("actionable(nil) = %v, want nil", got)
	}
}

func TestExplicitConfigErrorAborts(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	app := NewApp(Dependencies{
		Config: staticConfig{err: errors.New("boom")},
		Stdout: &bytes.Buffer{},
		Stderr: stderr,
	})
	if code := Run(context.Background(), app, []string{"--config", "x.cue", "selftest"}); code != types.ExitFailure {
		t.Errorf("exit code = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestDefaultConfigErrorFallsBack(t *testing.T) {
	t.Parallel()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp(Dependencies{
		Config: staticConfig{err: errors.New("boom")},
		Stdout: stdout,
		Stderr: stderr,
	})
	if code := Run(context.Background(), app, []string{"selftest"}); code != types.ExitOK {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "using defaults") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Successfully parsed: Marcus Aurelius Quotes") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("short  text\n", 20); got != "short text" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate() = %q, want abc...", got)
	}
}
