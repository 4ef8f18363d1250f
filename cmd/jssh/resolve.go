// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jssh-cli/internal/issue"
	"jssh-cli/internal/module"

	"github.com/spf13/cobra"
)

func newResolveCommand(app *App) *cobra.Command {
	var from string

	resolveCmd := &cobra.Command{
		Use:   "resolve <specifier>",
		Short: "Show the file a module specifier resolves to",
		Long: `Show the file a module specifier resolves to, without loading it.

With --verbose, the dependency directories searched for a bare name are
listed on stderr, nearest first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := from
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}
			return resolveSpecifier(cmd, app, args[0], dir)
		},
	}

	resolveCmd.Flags().StringVar(&from, "from", "", "directory to resolve from (default is the current directory)")
	return resolveCmd
}

func resolveSpecifier(cmd *cobra.Command, app *App, specifier, dir string) error {
	resolver := module.NewResolver(app.FS, app.cfg.Modules.DependencyDir, app.logger)

	filename, err := resolver.Resolve(specifier, dir)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("resolve module").
			WithResource(specifier).
			Wrap(err)
		if errors.Is(err, module.ErrCannotResolve) {
			ctx.WithIssue(issue.ModuleNotFoundId)
		}
		return app.fail(cmd, ctx.BuildError(), 1)
	}

	fmt.Fprintln(app.stdout, filename)

	if app.verbose() && !module.IsPathSpecifier(specifier) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.stderr, VerboseStyle.Render("Search paths:"))
		for _, p := range resolver.SearchPaths(abs) {
			fmt.Fprintln(app.stderr, VerboseStyle.Render("  "+p))
		}
	}
	return nil
}
