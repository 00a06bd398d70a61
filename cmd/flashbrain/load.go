// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gatewaynode/flashbrain/pkg/types"
)

func newLoadCommand(app *App) *cobra.Command {
	var (
		ff     formatFlags
		pacing bool
	)

	cmd := &cobra.Command{
		Use:   "load <lesson-id>",
		Short: "Show the full content of one lesson",
		Long: `Show the full content of one lesson. The lesson id is the name of its
directory under the content root.

With --pacing, print how long each item stays on screen and how long each
word is highlighted, based on the lesson's seconds_per_word.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.lessons()
			if err != nil {
				return actionable("resolve the content root", app.session.flags.root, err)
			}

			id := types.LessonID(args[0])
			rec, err := svc.LoadLesson(cmd.Context(), id)
			if err != nil {
				return actionable("load lesson", string(id), err)
			}

			switch f := ff.format(); {
			case f != formatText && pacing:
				return writeStructured(app.stdout, f, newLoadView(rec))
			case f != formatText:
				return writeStructured(app.stdout, f, rec)
			case pacing:
				return renderPacing(app.stdout, rec)
			default:
				return renderRecord(app.stdout, rec)
			}
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&pacing, "pacing", false, "show per-item display timings")
	return cmd
}
