// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/dop251/goja"
	"github.com/spf13/cobra"
)

func newEvalCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <code> [args...]",
		Short: "Evaluate JavaScript and print the result",
		Long: `Evaluate JavaScript and print the result.

require resolves relative to the current directory. The completion value is
printed unless it is undefined or null.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			rt := app.newRuntime(args[1:])
			v, err := rt.Eval(args[0], dir)
			if err != nil {
				return app.scriptOutcome(cmd, "eval", err)
			}
			if v != nil && !goja.IsUndefined(v) && !goja.IsNull(v) {
				fmt.Fprintln(app.stdout, rt.Inspect(v))
			}
			return nil
		},
	}
}
