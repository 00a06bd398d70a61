// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"

	"github.com/gatewaynode/flashbrain/internal/discovery"
	"github.com/gatewaynode/flashbrain/internal/issue"
	"github.com/gatewaynode/flashbrain/pkg/lesson"
)

// classify maps a lesson core error to the issue that explains it.
func classify(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, discovery.ErrRootNotFound):
		return issue.RootNotFoundId, true
	case errors.Is(err, discovery.ErrDirectoryRead):
		return issue.DirectoryReadFailedId, true
	case errors.Is(err, discovery.ErrLessonNotFound):
		return issue.LessonNotFoundId, true
	case errors.Is(err, discovery.ErrDataFileNotFound):
		return issue.DataFileNotFoundId, true
	case errors.Is(err, lesson.ErrSchema):
		return issue.LessonSchemaErrorId, true
	case errors.Is(err, discovery.ErrLessonRead):
		return issue.LessonReadFailedId, true
	default:
		return 0, false
	}
}

// actionable wraps a lesson core error with the operation that failed and
// suggestions for the user. Errors that are already actionable, and errors
// classify does not know, are returned unchanged.
func actionable(operation, resource string, err error) error {
	if err == nil {
		return nil
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}
	id, ok := classify(err)
	if !ok {
		return err
	}

	ctx := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithIssue(id)

	switch id {
	case issue.RootNotFoundId:
		ctx.WithSuggestions(
			"Pass the content directory with --root",
			"Set FLASHBRAIN_CONTENT_ROOT or content_root in the config file",
		)
	case issue.LessonNotFoundId:
		ctx.WithSuggestion("Run 'flashbrain lessons' to list the available lessons")
	case issue.DataFileNotFoundId:
		ctx.WithSuggestion(fmt.Sprintf("Add a %s (or legacy %s) to the lesson directory",
			lesson.LessonFileName, lesson.TrainingFileName))
	case issue.LessonSchemaErrorId:
		ctx.WithSuggestion("Run 'flashbrain diagnose' to check every lesson at once")
	case issue.DirectoryReadFailedId, issue.LessonReadFailedId:
		ctx.WithSuggestion("Check the file and directory permissions")
	}

	return ctx.Wrap(err).BuildError()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// newErrorHandler returns the fang error handler. Silent exit errors print
// nothing; actionable errors print their suggestions and, in verbose mode,
// the rendered issue help.
func newErrorHandler(app *App, flags *rootFlagValues) fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}

		verbose := flags.verbose
		style := "auto"
		if app.session != nil {
			verbose = app.session.verbose
			style = app.session.helpStyle
		}

		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

		var ae *issue.ActionableError
		if !errors.As(err, &ae) || ae.Issue == 0 {
			return
		}
		// an unresolvable root always gets the full help page
		if !verbose && ae.Issue != issue.RootNotFoundId {
			return
		}
		help := issue.Get(ae.Issue)
		if help == nil {
			return
		}
		if out, renderErr := help.Render(style); renderErr == nil {
			fmt.Fprint(w, strings.TrimRight(out, "\n")+"\n")
		}
	}
}
