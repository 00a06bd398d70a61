// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gatewaynode/flashbrain/pkg/types"
)

func newDiagnoseCommand(app *App) *cobra.Command {
	var (
		ff       formatFlags
		strict   bool
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Count lesson data files and parse failures",
		Long: `Walk every lesson directory and report which data files exist, which one
is used, and whether it parses. The discrepancy is the number of lessons
that have a data file but would be missing from 'flashbrain lessons'.

With --strict, exit with status 3 when the discrepancy is not zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.lessons()
			if err != nil {
				return actionable("resolve the content root", app.session.flags.root, err)
			}

			discrepancy := 0
			diagnose := func(ctx context.Context) error {
				report, err := svc.Diagnose(ctx)
				if err != nil {
					return actionable("diagnose lessons", string(svc.Root()), err)
				}
				discrepancy = report.Discrepancy()
				if f := ff.format(); f != formatText {
					return writeStructured(app.stdout, f, report)
				}
				return renderReport(app.stdout, report)
			}

			if watching {
				return runWatchMode(cmd.Context(), app, svc, diagnose)
			}
			if err := diagnose(cmd.Context()); err != nil {
				return err
			}
			if strict && discrepancy > 0 {
				return &ExitError{Code: types.ExitDiscrepancy}
			}
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 3 if any data file fails to parse")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "re-run whenever lesson content changes")
	cmd.MarkFlagsMutuallyExclusive("strict", "watch")
	return cmd
}
