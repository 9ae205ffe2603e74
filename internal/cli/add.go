package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate and add an entry to the dataset",
		Long: `Validate and add an entry to the dataset.

Chat:        curate add -s "You are terse." -m "user:Hi" -m "assistant:Hello."
Instruction: curate add -t instruction --instruction "Translate to French" --input "cat" --output "chat"

If validation reports blocking issues you are asked whether to add the entry anyway.`,
		Run: runAdd,
	}

	addDraftFlags(cmd)
	cmd.Flags().BoolP("yes", "y", false, "Add even when validation reports blocking issues")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")

	s := openSession(false)
	defer s.Close()
	ctx := cmd.Context()

	s.fillDraft(cmd)

	err := s.ctrl.Dispatch(ctx, editor.Submit())
	if errors.Is(err, editor.ErrIncomplete) {
		exitErr("add", err)
	}
	if err == nil {
		err = s.settle(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), yes)
	}
	exitDeclined(err)
	if err != nil {
		exitErr("add", err)
	}

	vm := s.ctrl.View()
	if textMode() {
		fmt.Fprint(cmd.OutOrStdout(), statsText(vm.Stats)+"\n")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"total":%d}`+"\n", vm.Stats.Total)
}
