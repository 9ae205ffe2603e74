package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s := openSession(false)
	defer s.Close()

	s.dispatch(cmd.Context(), "load entries", editor.Reload())

	st := s.ctrl.View().Stats
	if textMode() {
		fmt.Fprintln(cmd.OutOrStdout(), statsText(st))
		return
	}
	printJSON(cmd.OutOrStdout(), st)
}
