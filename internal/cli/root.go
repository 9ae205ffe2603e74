// Package cli implements the curate CLI commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/curate/internal/api"
	"github.com/rcliao/curate/internal/config"
	"github.com/rcliao/curate/internal/editor"
	"github.com/rcliao/curate/internal/logging"
)

var (
	configPath string
	apiURL     string
	formatFlag string
)

// RootCmd is the top-level command. With no subcommand it opens the editor.
var RootCmd = &cobra.Command{
	Use:   "curate",
	Short: "Curate chat and instruction datasets for LLM fine-tuning",
	Long:  "A terminal editor for building fine-tuning datasets against a curation API. Run without a subcommand to open the interactive editor.",
	Run:   runEdit,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $CURATE_CONFIG or ~/.curate/config.yml)")
	RootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend URL (overrides config and $CURATE_API_URL)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(config.Path(configPath), configPath != "")
	if err != nil {
		exitErr("load config", err)
	}
	if apiURL != "" {
		cfg.API.URL = apiURL
	}
	return cfg
}

// session wires a controller for one-shot commands. Logs go to stderr.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	ctrl   *editor.Controller
}

func openSession(logToFile bool, overrides ...func(*config.Config)) *session {
	cfg := loadConfig()
	for _, o := range overrides {
		o(cfg)
	}

	logPath := ""
	if logToFile {
		logPath = cfg.Log.File
	}
	level := cfg.Log.Level
	if !logToFile && level == "info" {
		level = "warn"
	}
	logger, err := logging.New(level, logPath)
	if err != nil {
		exitErr("init logger", err)
	}

	client := api.NewClient(cfg.API.URL, logger.Named("api"))
	ctrl := editor.New(client, editor.Options{
		PerPage:           cfg.Editor.EntriesPerPage,
		BannerTTL:         cfg.Editor.BannerTTL,
		NoticeTTL:         cfg.Editor.NoticeTTL,
		DownloadNoticeTTL: cfg.Download.NoticeTTL,
		DownloadDir:       cfg.Download.Dir,
		Logger:            logger.Named("editor"),
	})
	return &session{cfg: cfg, logger: logger, client: client, ctrl: ctrl}
}

func (s *session) Close() {
	_ = s.logger.Sync()
}

func (s *session) dispatch(ctx context.Context, what string, a editor.Action) {
	if err := s.ctrl.Dispatch(ctx, a); err != nil {
		exitErr(what, err)
	}
}

// settle answers an open confirmation, prompting on in/out unless yes is set.
// It returns editor.ErrDeclined when the user says no.
func (s *session) settle(ctx context.Context, in io.Reader, out io.Writer, yes bool) error {
	vm := s.ctrl.View()
	if vm.Confirm == nil {
		return nil
	}
	if yes || askYesNo(in, out, vm.Confirm.Prompt, vm.Validation.Issues) {
		return s.ctrl.Dispatch(ctx, editor.Confirm())
	}
	if err := s.ctrl.Dispatch(ctx, editor.Decline()); err != nil {
		return err
	}
	return editor.ErrDeclined
}

func askYesNo(in io.Reader, out io.Writer, prompt string, details []string) bool {
	for _, d := range details {
		fmt.Fprintf(out, "  - %s\n", d)
	}
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// exitDeclined ends the process quietly when the user backs out of a confirmation.
func exitDeclined(err error) {
	if errors.Is(err, editor.ErrDeclined) {
		os.Exit(0)
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
