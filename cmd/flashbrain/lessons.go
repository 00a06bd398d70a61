// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newLessonsCommand(app *App) *cobra.Command {
	var (
		ff       formatFlags
		watching bool
	)

	cmd := &cobra.Command{
		Use:     "lessons",
		Aliases: []string{"ls", "list"},
		Short:   "List every lesson whose data file parses",
		Long: `List every lesson under the content root whose data file parses.

Lessons with a broken data file are left out of the list and reported on
stderr. Directories without a data file are skipped silently.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.lessons()
			if err != nil {
				return actionable("resolve the content root", app.session.flags.root, err)
			}

			list := func(ctx context.Context) error {
				res, err := svc.ListLessons(ctx)
				if err != nil {
					return actionable("list lessons", string(svc.Root()), err)
				}
				app.Diagnostics.Render(ctx, res.Diagnostics, app.stderr)
				if f := ff.format(); f != formatText {
					return writeStructured(app.stdout, f, res.Summaries)
				}
				return renderSummaries(app.stdout, string(svc.Root()), res.Summaries)
			}

			if watching {
				return runWatchMode(cmd.Context(), app, svc, list)
			}
			return list(cmd.Context())
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "re-list whenever lesson content changes")
	return cmd
}
