// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Run a script file",
		Long: `Run a script file.

The script runs with __filename and __dirname set to its location and a
require bound to its directory. A leading "#!" line is ignored. Arguments
after the script are available as __args.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, app, args[0], args[1:])
		},
	}
	runCmd.Flags().SetInterspersed(false)
	return runCmd
}

func runScript(cmd *cobra.Command, app *App, script string, args []string) error {
	app.logger.Debug("run", "script", script, "args", args)
	rt := app.newRuntime(args)
	return app.scriptOutcome(cmd, script, rt.RunFile(script))
}
