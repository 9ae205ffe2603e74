package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one entry's full record",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	s := openSession(false)
	defer s.Close()
	ctx := cmd.Context()

	s.dispatch(ctx, "load entries", editor.Reload())
	s.dispatch(ctx, "show", editor.Inspect(args[0]))

	d := s.ctrl.View().Detail
	if textMode() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d.ID, d.Title)
	}
	fmt.Fprintln(cmd.OutOrStdout(), d.JSON)
}
