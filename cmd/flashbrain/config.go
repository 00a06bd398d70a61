// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatewaynode/flashbrain/internal/config"
	"github.com/gatewaynode/flashbrain/internal/issue"
)

// newConfigCommand creates the `flashbrain config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect flashbrain configuration",
		Long: `Inspect flashbrain configuration.

Configuration is read from config.cue (or config.toml) in:
  - Linux: ~/.config/flashbrain/
  - macOS: ~/Library/Application Support/flashbrain/
  - Windows: %LOCALAPPDATA%\flashbrain\

FLASHBRAIN_* environment variables override the file, for example
FLASHBRAIN_CONTENT_ROOT or FLASHBRAIN_PRECEDENCE.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var showJSON, showTOML bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.session
			switch {
			case showJSON:
				enc := json.NewEncoder(app.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s.cfg)
			case showTOML:
				out, err := config.GenerateTOML(s.cfg)
				if err != nil {
					return issue.WrapWithOperation(err, "render configuration as TOML")
				}
				_, err = fmt.Fprint(app.stdout, out)
				return err
			}
			source := s.cfgPath
			if source == "" {
				source = "defaults"
			}
			_, err := fmt.Fprintf(app.stdout, "// source: %s\n%s", source, config.GenerateCUE(s.cfg))
			return err
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")
	showCmd.Flags().BoolVar(&showTOML, "toml", false, "print TOML")
	showCmd.MarkFlagsMutuallyExclusive("json", "toml")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.session.cfgPath
			if path == "" {
				p, err := config.ConfigFilePath()
				if err != nil {
					return err
				}
				path = p
			}
			state := SuccessStyle.Render("exists")
			if _, err := os.Stat(path); err != nil {
				state = SubtitleStyle.Render("not found, using defaults")
			}
			_, err := fmt.Fprintf(app.stdout, "%s (%s)\n", path, state)
			return err
		},
	}

	var dumpTOML bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a default configuration file",
		Long: `Print a configuration file with every default value, ready to be saved
as config.cue (or config.toml with --toml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dumpTOML {
				out, err := config.GenerateTOML(config.DefaultConfig())
				if err != nil {
					return issue.WrapWithOperation(err, "render default configuration as TOML")
				}
				_, err = fmt.Fprint(app.stdout, out)
				return err
			}
			_, err := fmt.Fprint(app.stdout, config.GenerateCUE(config.DefaultConfig()))
			return err
		},
	}
	dumpCmd.Flags().BoolVar(&dumpTOML, "toml", false, "print TOML instead of CUE")

	cfgCmd.AddCommand(showCmd, pathCmd, dumpCmd)
	return cfgCmd
}
