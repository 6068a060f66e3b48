package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/logging"
	mcpserver "github.com/ziadkadry99/termlens/internal/mcp"
	"github.com/ziadkadry99/termlens/internal/terms"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing term explanation and detection tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		idx, err := terms.LoadFile(cfg.TermsFile)
		if err != nil {
			return err
		}

		// stdout carries the protocol.
		svc, err := openLocalService(cfg, idx, logging.New(os.Stderr, verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "termlens MCP server started on stdio (terms=%d, db=%s)\n", idx.Len(), svc.db.Path())

		srv := mcpserver.NewServer(svc.Service, newRenderer(cfg, idx, true))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
