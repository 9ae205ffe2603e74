package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/curate/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive editor (default)",
		Run:   runEdit,
	}

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	s := openSession(true)
	defer s.Close()

	s.logger.Info("editor started", zap.String("api", s.cfg.API.URL))
	if err := tui.Run(cmd.Context(), s.ctrl, s.logger.Named("tui")); err != nil {
		exitErr("editor", err)
	}
}
