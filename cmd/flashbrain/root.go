// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gatewaynode/flashbrain/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
	root       string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) (*cobra.Command, *rootFlagValues) {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "flashbrain",
		Short: "Browse and check flashbrain lesson content",
		Long: TitleStyle.Render("flashbrain") + SubtitleStyle.Render(" - lesson content tools") + `

flashbrain reads the lesson directories under a content root. Each lesson
is a directory holding a lesson.json (or a legacy training.json) file.

` + SubtitleStyle.Render("Examples:") + `
  flashbrain lessons                 List every lesson that parses
  flashbrain load stoics             Show one lesson
  flashbrain load stoics --pacing    Show per-item display timings
  flashbrain diagnose                Count data files and parse failures
  flashbrain --root ./classes lessons`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.start(cmd.Context(), flags)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output and debug logging")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/flashbrain/config.cue)")
	pf.StringVar(&flags.root, "root", "", "lesson content root (overrides FLASHBRAIN_CONTENT_ROOT and content_root)")

	rootCmd.AddCommand(
		newLessonsCommand(app),
		newLoadCommand(app),
		newDiagnoseCommand(app),
		newConfigCommand(app),
		newSelftestCommand(app),
	)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	return rootCmd, flags
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, app *App, args []string) types.ExitCode {
	rootCmd, flags := NewRootCommand(app)
	rootCmd.SetArgs(args)

	err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(newErrorHandler(app, flags)),
	)
	if err == nil {
		return types.ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// Execute runs the CLI against the process arguments. This is called by
// main.main().
func Execute() {
	os.Exit(int(Run(context.Background(), NewApp(Dependencies{}), os.Args[1:])))
}
