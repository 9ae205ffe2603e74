package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry in the dataset (irreversible)",
		Run:   runClear,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")

	s := openSession(false)
	defer s.Close()
	ctx := cmd.Context()

	s.dispatch(ctx, "clear", editor.ClearAll())
	err := s.settle(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), yes)
	exitDeclined(err)
	if err != nil {
		exitErr("clear", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}
