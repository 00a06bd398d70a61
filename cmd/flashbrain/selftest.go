// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
)

//go:embed selftest_sample.json
var selftestSample []byte

func newSelftestCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Parse a built-in legacy training.json sample",
		Long: `Parse a built-in legacy training.json sample through the same schema
and normalization used for lesson content. Useful to confirm a build works
without any content on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := lesson.Parse(selftestSample, lesson.KindTraining, "selftest:"+lesson.TrainingFileName)
			if err != nil {
				return fmt.Errorf("JSON parsing failed: %w", err)
			}
			app.session.logger.Debug("selftest sample parsed", "items", len(rec.Items))
			_, err = fmt.Fprintln(app.stdout, SuccessStyle.Render("Successfully parsed: "+rec.Meta.Title))
			return err
		},
	}
}
