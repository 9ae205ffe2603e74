package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/api"
	"github.com/rcliao/curate/internal/config"
	"github.com/rcliao/curate/internal/editor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the dataset export",
		Long:  "Download the whole dataset as a JSON array (--as json) or newline-delimited JSON (--as jsonl). The backend produces the file.",
		Run:   runDownload,
	}

	cmd.Flags().String("as", "json", "Export format: json or jsonl")
	cmd.Flags().String("dir", "", "Target directory (default from config)")

	RootCmd.AddCommand(cmd)
}

func runDownload(cmd *cobra.Command, args []string) {
	as, _ := cmd.Flags().GetString("as")
	dir, _ := cmd.Flags().GetString("dir")

	format := api.ExportFormat(as)
	if !api.ValidExportFormats[format] {
		exitErr("download", fmt.Errorf("invalid format %q (want json or jsonl)", as))
	}

	s := openSession(false, func(cfg *config.Config) {
		if dir != "" {
			cfg.Download.Dir = dir
		}
	})
	defer s.Close()

	s.dispatch(cmd.Context(), "download", editor.Download(format))
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"notice":%q}`+"\n", s.ctrl.View().Notice)
}
