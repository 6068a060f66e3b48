package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/explain"
	"github.com/ziadkadry99/termlens/internal/live"
	"github.com/ziadkadry99/termlens/internal/overlay"
	"github.com/ziadkadry99/termlens/internal/server"
	"github.com/ziadkadry99/termlens/internal/site"
	"github.com/ziadkadry99/termlens/internal/terms"
)

var (
	servePort int
	serveSite string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the explanation server",
	Long: `Starts the termlens HTTP server: the explain API under /simplifier, the
live overlay websocket at /overlay/ws, /healthz and /metrics. With --site,
a site built by "termlens site" is served from the same host. The terms
file, when configured, is reloaded whenever it changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveSite, "site", "", "directory of a built docs site to serve")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	logger := newLogger()

	idx, err := terms.LoadFile(cfg.TermsFile)
	if err != nil {
		return err
	}

	svc, err := openLocalService(cfg, idx, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, svc.db, logger)

	// auto_highlight is a page setting; an explicit highlight request always marks.
	explain.RegisterRoutes(srv.Router(), svc.Service, newRenderer(cfg, idx, true))
	bridge := live.NewBridge(overlay.ExplainerFunc(svc.Lookup), cfg.Overlay.Options(), logger)
	bridge.RegisterRoutes(srv.Streams())
	if serveSite != "" {
		if _, err := os.Stat(serveSite); err != nil {
			return fmt.Errorf("site directory: %w", err)
		}
		site.Mount(srv.Streams(), serveSite)
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TermsFile != "" {
		if err := terms.Watch(ctx, cfg.TermsFile, idx, logger); err != nil {
			logger.Warn("terms hot reload disabled", "err", err)
		}
	}

	fmt.Fprintf(os.Stderr, "termlens server v%s starting on port %d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", svc.db.Path())
	fmt.Fprintf(os.Stderr, "  Terms indexed: %d\n", idx.Len())
	fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)
	if serveSite != "" {
		fmt.Fprintf(os.Stderr, "  Site: http://localhost:%d/\n", cfg.Server.Port)
	}

	return srv.Run(ctx)
}
