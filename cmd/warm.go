package cmd

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/termlens/internal/client"
	"github.com/ziadkadry99/termlens/internal/progress"
	"github.com/ziadkadry99/termlens/internal/terms"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-populate the server's explanation cache",
	Long: `Requests an explanation for every term in the index from the running
server so readers never wait on the LLM for known terms. Already cached
terms cost nothing.`,
	RunE: runWarm,
}

func init() {
	warmCmd.Flags().Int("concurrency", 0, "max parallel requests (overrides config)")
	rootCmd.AddCommand(warmCmd)
}

func runWarm(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency > 0 {
		cfg.MaxConcurrency = concurrency
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}

	idx, err := terms.LoadFile(cfg.TermsFile)
	if err != nil {
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	list := idx.Terms()
	reporter := progress.NewReporter()
	reporter.Start(len(list), "Warming cache")

	var cached, generated, failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)
	for _, term := range list {
		g.Go(func() error {
			resp, err := c.Lookup(gctx, client.Request{Term: term})
			switch {
			case err != nil:
				failed.Add(1)
				reporter.Step("failed: " + term)
				if verbose {
					fmt.Fprintf(os.Stderr, "  %s: %v\n", term, err)
				}
			case resp.Cached:
				cached.Add(1)
				reporter.Step(term)
			default:
				generated.Add(1)
				reporter.Step(term)
			}
			return nil
		})
	}
	_ = g.Wait()
	reporter.Finish()

	fmt.Fprintf(os.Stderr, "Warmed %d terms in %s: %d generated, %d already cached, %d failed\n",
		len(list), time.Since(start).Round(time.Millisecond), generated.Load(), cached.Load(), failed.Load())
	if n := failed.Load(); n > 0 && int(n) == len(list) {
		return fmt.Errorf("every request failed; is `termlens serve` running at %s?", cfg.ServerURL())
	}
	return nil
}
