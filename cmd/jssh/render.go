// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"jssh-cli/internal/config"
	"jssh-cli/internal/engine"
	"jssh-cli/internal/issue"
	"jssh-cli/internal/module"

	"github.com/spf13/cobra"
)

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method, which adds the error chain in verbose mode.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// fail prints err to stderr, adds catalog guidance in verbose mode, and
// returns an ExitError so fang does not print it again.
func (a *App) fail(cmd *cobra.Command, err error, code int) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	a.printError(err)
	return &ExitError{Code: code, Err: err}
}

// printError writes err to stderr with catalog guidance in verbose mode.
func (a *App) printError(err error) {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose()))

	var ae *issue.ActionableError
	if a.verbose() && errors.As(err, &ae) {
		if iss := ae.Issue(); iss != nil {
			if rendered, renderErr := iss.Render(a.glamourStyle()); renderErr == nil {
				fmt.Fprint(a.stderr, rendered)
			}
		}
	}
}

// scriptOutcome turns the result of running script code into the command
// result: exit(0) succeeds, exit(n) becomes an ExitError, and failures are
// reported with the matching catalog entry.
func (a *App) scriptOutcome(cmd *cobra.Command, resource string, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *engine.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code == 0 {
			return nil
		}
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		return &ExitError{Code: exitErr.Code}
	}

	return a.fail(cmd, classifyScriptError(resource, err), 1)
}

// classifyScriptError wraps a script failure with context and links it to
// the catalog entry for its cause.
func classifyScriptError(resource string, err error) error {
	cause := err
	if hostErr := engine.HostError(err); hostErr != nil {
		cause = hostErr
	}

	ctx := issue.NewErrorContext().
		WithOperation("run script").
		WithResource(resource).
		Wrap(err)

	switch {
	case errors.Is(cause, fs.ErrNotExist):
		ctx.WithIssue(issue.ScriptNotFoundId).
			WithSuggestion("Check the script path for typos")
	case errors.Is(cause, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Check that the script is readable")
	case errors.Is(cause, module.ErrCannotResolve):
		ctx.WithIssue(issue.ModuleNotFoundId).
			WithSuggestion("Run 'jssh resolve <name> --from <dir>' to inspect resolution")
	case errors.Is(cause, module.ErrCannotLoad):
		ctx.WithIssue(issue.ModuleLoadFailedId).
			WithSuggestion("Check the failing module named in the error")
	default:
		ctx.WithIssue(issue.ScriptExecutionFailedId)
	}

	return ctx.BuildError()
}
