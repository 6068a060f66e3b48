package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/db"
	"github.com/ziadkadry99/termlens/internal/explain"
	"github.com/ziadkadry99/termlens/internal/terms"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the explanation cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "List cached terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openCache()
		if err != nil {
			return err
		}
		defer svc.Close()

		stats, err := svc.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d cached terms\n", stats.Total)
		for _, t := range stats.Terms {
			fmt.Printf("  %s\n", t)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached explanation",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openCache()
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := svc.Clear(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Cache cleared. %d terms removed.\n", n)
		return nil
	},
}

func openCache() (*localService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	idx, err := terms.LoadFile(cfg.TermsFile)
	if err != nil {
		return nil, err
	}
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// No provider: these commands never generate.
	svc := explain.NewService(explain.Config{
		Store:  explain.NewStore(database),
		Index:  idx,
		Logger: newLogger(),
	})
	return &localService{Service: svc, db: database}, nil
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
