package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/site"
	"github.com/ziadkadry99/termlens/internal/terms"
)

var siteCmd = &cobra.Command{
	Use:   "site [docs-dir]",
	Short: "Build a static docs site with term explanations",
	Long: `Builds a static HTML site from a directory of markdown files. Known terms
are marked on every page, and each page connects to a termlens server's
live overlay so hovering or selecting a term shows its explanation.

Serve the output with "termlens serve --site <out>" to get explanations
without configuring --live-url.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("out", "_site", "output directory")
	siteCmd.Flags().String("name", "", "project name shown in the sidebar (default: docs directory name)")
	siteCmd.Flags().String("live-url", "", "overlay websocket URL pages connect to (default: same host)")
	siteCmd.Flags().StringSlice("include", nil, "glob patterns of files to include (default **/*.md)")
	siteCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to skip")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	name, _ := cmd.Flags().GetString("name")
	liveURL, _ := cmd.Flags().GetString("live-url")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	docsDir := "."
	if len(args) > 0 {
		docsDir = args[0]
	}
	if name == "" {
		abs, err := filepath.Abs(docsDir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	idx, err := terms.LoadFile(cfg.TermsFile)
	if err != nil {
		return err
	}

	gen := site.NewSiteGenerator(docsDir, outDir, name, newRenderer(cfg, idx, false))
	gen.LiveURL = liveURL
	gen.Include = include
	gen.Exclude = exclude

	n, err := gen.Generate()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Built %d pages into %s\n", n, outDir)
	return nil
}
