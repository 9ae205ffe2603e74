package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in draft templates",
		Run:   runTemplates,
	}

	RootCmd.AddCommand(cmd)
}

type templateRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
}

func runTemplates(cmd *cobra.Command, args []string) {
	rows := make([]templateRow, 0, len(editor.Templates))
	for _, t := range editor.Templates {
		rows = append(rows, templateRow{ID: t.ID, Name: t.Name, Format: string(t.Format)})
	}

	if textMode() {
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%-15s %-26s %s\n", r.ID, r.Name, r.Format)
		}
		return
	}
	printJSON(cmd.OutOrStdout(), rows)
}
