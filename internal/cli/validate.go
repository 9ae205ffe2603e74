package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Ask the backend for a quality assessment of a draft",
		Long:  "Build a draft from the same flags as add and print the backend's quality assessment without storing anything.",
		Run:   runValidate,
	}

	addDraftFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	tmpl, _ := cmd.Flags().GetString("template")

	s := openSession(false)
	defer s.Close()

	s.fillDraft(cmd)
	if tmpl == "" {
		s.dispatch(cmd.Context(), "validate", editor.Validate())
	}

	p := s.ctrl.View().Validation
	if textMode() {
		fmt.Fprint(cmd.OutOrStdout(), validationText(p))
		return
	}
	printJSON(cmd.OutOrStdout(), p)
}
