package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	id := args[0]

	s := openSession(false)
	defer s.Close()
	ctx := cmd.Context()

	s.dispatch(ctx, "rm", editor.Delete(id))
	err := s.settle(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), yes)
	exitDeclined(err)
	if err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
}
