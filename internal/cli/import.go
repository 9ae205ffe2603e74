package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/curate/internal/editor"
	"github.com/rcliao/curate/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Add records from a dataset export",
		Long:  "Add records from a JSON array or JSONL file (stdin when no file is given). Expects the format produced by download.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	cmd.Flags().Bool("validate", false, "Skip records the backend reports blocking issues for")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	validate, _ := cmd.Flags().GetBool("validate")

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open file", err)
		}
		defer f.Close()
		in = f
	}

	recs, err := model.ReadRecords(in)
	if err != nil {
		exitErr("parse records", err)
	}

	s := openSession(false)
	defer s.Close()
	ctx := cmd.Context()

	imported, skipped := 0, 0
	for i, rec := range recs {
		if validate {
			res, err := s.client.Validate(ctx, rec)
			if err != nil {
				exitErr(fmt.Sprintf("validate record %d", i+1), err)
			}
			if res.Blocking() {
				s.logger.Warn("skipping record with blocking issues", zap.Int("record", i+1), zap.Strings("issues", res.Issues))
				skipped++
				continue
			}
		}
		if _, err := s.client.CreateEntry(ctx, rec); err != nil {
			exitErr(fmt.Sprintf("import record %d", i+1), err)
		}
		imported++
	}

	s.dispatch(ctx, "load entries", editor.Reload())
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d,"skipped":%d,"total":%d}`+"\n",
		imported, skipped, s.ctrl.View().Stats.Total)
}
