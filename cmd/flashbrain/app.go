// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gatewaynode/flashbrain/internal/config"
	"github.com/gatewaynode/flashbrain/internal/discovery"
	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App and reaches the
	// lesson core only through it.
	App struct {
		Config      ConfigProvider
		Lessons     LessonServiceFactory
		Diagnostics DiagnosticRenderer
		stdout      io.Writer
		stderr      io.Writer

		// session is filled in by the root command's PersistentPreRunE.
		session *session
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		Lessons     LessonServiceFactory
		Diagnostics DiagnosticRenderer
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.LoadResult, error)
	}

	// LessonService is the lesson content core as seen by the commands.
	LessonService interface {
		Root() types.FilesystemPath
		ListLessons(ctx context.Context) (discovery.ListResult, error)
		LoadLesson(ctx context.Context, id types.LessonID) (*lesson.Record, error)
		Diagnose(ctx context.Context) (*discovery.Report, error)
	}

	// LessonServiceFactory builds the lesson core for a resolved content root.
	LessonServiceFactory func(root types.FilesystemPath, cfg *config.Config, logger *slog.Logger) LessonService

	// DiagnosticRenderer renders structured diagnostics.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diags []discovery.Diagnostic, stderr io.Writer)
	}

	// session is the per-invocation state shared by subcommands.
	session struct {
		flags      *rootFlagValues
		cfg        *config.Config
		cfgPath    string
		logger     *slog.Logger
		helpStyle  string
		verbose    bool
		lessonCore LessonService
	}

	defaultDiagnosticRenderer struct{}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Lessons == nil {
		deps.Lessons = newDiscoveryService
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{}
	}

	return &App{
		Config:      deps.Config,
		Lessons:     deps.Lessons,
		Diagnostics: deps.Diagnostics,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// newDiscoveryService is the production LessonServiceFactory.
func newDiscoveryService(root types.FilesystemPath, cfg *config.Config, logger *slog.Logger) LessonService {
	return discovery.New(root,
		discovery.WithPrecedence(cfg.Precedence.Kind()),
		discovery.WithLogger(logger),
	)
}

// start loads configuration and sets up logging for one invocation.
//
// A broken config file named with --config aborts the command. A broken file
// at the default location is reported and defaults are used.
func (a *App) start(ctx context.Context, flags *rootFlagValues) error {
	res, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		if flags.configPath != "" || errors.Is(err, context.Canceled) {
			return err
		}
		a.Diagnostics.Render(ctx, []discovery.Diagnostic{{
			Severity: discovery.SeverityWarning,
			Code:     "config_load_failed",
			Message:  fmt.Sprintf("failed to load config, using defaults: %s", formatErrorForDisplay(err, flags.verbose)),
			Cause:    err,
		}}, a.stderr)
		res = &config.LoadResult{Config: config.DefaultConfig()}
	}

	cfg := res.Config
	verbose := flags.verbose || cfg.UI.Verbose
	a.session = &session{
		flags:     flags,
		cfg:       cfg,
		cfgPath:   res.Path,
		logger:    newLogger(a.stderr, cfg.LogLevel, verbose),
		helpStyle: applyColorScheme(cfg.UI.ColorScheme),
		verbose:   verbose,
	}
	return nil
}

// lessons resolves the content root once per invocation and returns the
// lesson core bound to it. --root beats FLASHBRAIN_CONTENT_ROOT, which beats
// content_root from the config file; with none of them set the candidate
// directories are probed.
func (a *App) lessons() (LessonService, error) {
	s := a.session
	if s.lessonCore != nil {
		return s.lessonCore, nil
	}

	explicit := types.FilesystemPath(s.flags.root)
	if explicit == "" {
		explicit = s.cfg.ContentRoot
	}
	root, err := discovery.ResolveRoot(discovery.RootOptions{
		Explicit:   explicit,
		Candidates: s.cfg.RootCandidates,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("root resolved", "path", root.Path, "source", root.Source)

	s.lessonCore = a.Lessons(root.Path, s.cfg, s.logger)
	return s.lessonCore, nil
}

// Render writes structured diagnostics to stderr with lipgloss styling.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diags []discovery.Diagnostic, stderr io.Writer) {
	for _, diag := range diags {
		prefix := WarningStyle.Render("warning")
		if diag.Severity == discovery.SeverityError {
			prefix = ErrorStyle.Render("error")
		}

		if diag.Lesson != "" {
			_, _ = fmt.Fprintf(stderr, "%s: %s: %s\n", prefix, CmdStyle.Render(string(diag.Lesson)), diag.Message)
			continue
		}
		_, _ = fmt.Fprintf(stderr, "%s: %s\n", prefix, diag.Message)
	}
}
