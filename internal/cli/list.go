package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dataset entries one page at a time",
		Run:   runList,
	}

	cmd.Flags().IntP("page", "p", 1, "Page number (clamped to the last page)")
	cmd.Flags().IntP("per-page", "l", 0, "Entries per page (default from config)")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	s := openSession(false)
	defer s.Close()
	ctx := cmd.Context()

	s.dispatch(ctx, "load entries", editor.Reload())
	if perPage > 0 {
		s.dispatch(ctx, "set per-page", editor.SetPerPage(perPage))
	}
	s.dispatch(ctx, "set page", editor.SetPage(page))

	vm := s.ctrl.View()
	if textMode() {
		fmt.Fprint(cmd.OutOrStdout(), listingText(vm))
		return
	}
	printJSON(cmd.OutOrStdout(), pageListing{Entries: vm.Cards, Pagination: vm.Pagination, Stats: vm.Stats})
}
