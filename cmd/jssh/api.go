// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"jssh-cli/internal/engine"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newAPICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "api [prefix]",
		Short: "List the builtins available to scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) > 0 {
				prefix = args[0]
			}

			entries := engine.Complete(prefix)
			if len(entries) == 0 {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				fmt.Fprintf(app.stderr, "%s no builtin matches %q\n", WarningStyle.Render("!"), prefix)
				return &ExitError{Code: 1}
			}

			rendered, err := glamour.Render(apiMarkdown(entries), app.glamourStyle())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}
}

// apiMarkdown renders entries as a Markdown table.
func apiMarkdown(entries []engine.APIEntry) string {
	var sb strings.Builder
	sb.WriteString("| Name | Usage | Description |\n")
	sb.WriteString("| --- | --- | --- |\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", e.Name, e.Signature, e.Description)
	}
	return sb.String()
}
