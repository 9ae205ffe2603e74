package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the curation API is reachable",
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s := openSession(false)
	defer s.Close()

	if err := s.client.Ping(cmd.Context()); err != nil {
		exitErr("status", fmt.Errorf("%s: %w", s.cfg.API.URL, err))
	}
	if textMode() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", s.cfg.API.URL)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"api":%q}`+"\n", s.cfg.API.URL)
}
