package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/terms"
	"github.com/ziadkadry99/termlens/internal/walker"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [file|dir]",
	Short: "Render markdown to HTML with term markers",
	Long: `Converts markdown to HTML, wrapping every known technical term in a
marker span the overlay can attach to. A single file is written to stdout
unless --out is set; a directory is walked for markdown files and each one
is written under --out with an .html extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().String("out", "", "output directory")
	highlightCmd.Flags().StringSlice("include", nil, "glob patterns of files to include (default **/*.md)")
	highlightCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to skip")
	highlightCmd.Flags().Bool("terms", false, "list the terms found instead of rendering")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	listTerms, _ := cmd.Flags().GetBool("terms")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	idx, err := terms.LoadFile(cfg.TermsFile)
	if err != nil {
		return err
	}
	renderer := newRenderer(cfg, idx, true)

	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	if info.IsDir() && outDir == "" && !listTerms {
		return fmt.Errorf("--out is required when highlighting a directory")
	}

	var files []walker.FileInfo
	if info.IsDir() {
		files, err = walker.Walk(walker.WalkerConfig{RootDir: target, Include: include, Exclude: exclude})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(os.Stderr, "No markdown files found under %s\n", target)
			return nil
		}
	} else {
		files = []walker.FileInfo{{Path: target, RelPath: filepath.Base(target), Size: info.Size()}}
	}

	for _, f := range files {
		source, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.RelPath, err)
		}

		if listTerms {
			found := renderer.Find(source)
			fmt.Printf("%s: %s\n", f.RelPath, strings.Join(found, ", "))
			continue
		}

		html, err := renderer.Render(source)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}

		if outDir == "" {
			fmt.Print(html)
			continue
		}

		dest := filepath.Join(outDir, strings.TrimSuffix(filepath.FromSlash(f.RelPath), filepath.Ext(f.RelPath))+".html")
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(dest, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "  %s -> %s\n", f.RelPath, dest)
		}
	}

	if outDir != "" && !listTerms {
		fmt.Fprintf(os.Stderr, "Highlighted %d files into %s\n", len(files), outDir)
	}
	return nil
}
