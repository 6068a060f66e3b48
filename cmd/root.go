package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "termlens",
	Short: "Plain-language explanations for technical terms",
	Long: `termlens highlights technical terms in documentation and explains them
in plain language. It serves an explanation API and a live overlay for web
pages, reads markdown in the terminal, and exposes its tools to AI agents
via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
