// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gatewaynode/flashbrain/internal/watch"
)

// runWatchMode runs op once, then again every time lesson content under the
// root changes, until ctx is canceled (Ctrl+C). Failures of a single run are
// logged and do not stop watching.
func runWatchMode(ctx context.Context, app *App, svc LessonService, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, app.session.verbose))
	}

	w, err := watch.New(watch.Config{
		Root:     svc.Root(),
		Debounce: app.session.cfg.Watch.Debounce,
		Logger:   app.session.logger,
		OnChange: func(ctx context.Context, change watch.Change) error {
			ids := make([]string, 0, len(change.Lessons))
			for _, id := range change.Lessons {
				ids = append(ids, string(id))
			}
			fmt.Fprintf(app.stdout, "\n%s %s\n", SubtitleStyle.Render("changed:"), strings.Join(ids, ", "))
			return op(ctx)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(app.stderr, SubtitleStyle.Render("watching "+string(svc.Root())+" (Ctrl+C to stop)"))
	return w.Run(ctx)
}
