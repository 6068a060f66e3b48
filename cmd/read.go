package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/logging"
	"github.com/ziadkadry99/termlens/internal/overlay"
	"github.com/ziadkadry99/termlens/internal/terms"
	"github.com/ziadkadry99/termlens/internal/tui"
)

var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Read a markdown file with term explanations in the terminal",
	Long: `Opens a markdown file in a terminal reader. Known terms are highlighted;
tab and shift+tab step through them and show a plain-language explanation
next to each one. Explanations come from the running server, or from an
in-process service with --local.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().Bool("local", false, "explain in-process instead of calling the server")
	readCmd.Flags().String("log-file", "", "write debug logs to this file")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	local, _ := cmd.Flags().GetBool("local")
	logFile, _ := cmd.Flags().GetString("log-file")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	idx, err := terms.LoadFile(cfg.TermsFile)
	if err != nil {
		return err
	}

	// The reader owns the screen, so logs go to a file or nowhere.
	logger := logging.Discard()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, true)
	}

	var explainer overlay.Explainer
	if local {
		svc, err := openLocalService(cfg, idx, logger)
		if err != nil {
			return err
		}
		defer svc.Close()
		explainer = overlay.ExplainerFunc(svc.Lookup)
	} else {
		c, err := newClient(cfg)
		if err != nil {
			return err
		}
		explainer = c
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.Config{
		Title:     filepath.Base(args[0]),
		Document:  tui.NewDocument(string(source), idx, cfg.Overlay.MinTermLength),
		Explainer: explainer,
		Options:   tui.Options(cfg.Overlay.Options()),
		Logger:    logger,
	})
}
