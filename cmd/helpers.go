package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ziadkadry99/termlens/internal/client"
	"github.com/ziadkadry99/termlens/internal/config"
	"github.com/ziadkadry99/termlens/internal/db"
	"github.com/ziadkadry99/termlens/internal/explain"
	"github.com/ziadkadry99/termlens/internal/highlight"
	"github.com/ziadkadry99/termlens/internal/llm"
	"github.com/ziadkadry99/termlens/internal/logging"
	"github.com/ziadkadry99/termlens/internal/overlay"
	"github.com/ziadkadry99/termlens/internal/terms"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `termlens init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	return logging.New(os.Stderr, verbose)
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, rate limited to RateLimitRPM.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	p, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	return llm.NewRateLimitedProvider(p, cfg.RateLimitRPM), nil
}

// newRenderer builds the markdown renderer. Commands that exist to show
// markers force highlighting on.
func newRenderer(cfg *config.Config, idx *terms.Index, force bool) *highlight.Renderer {
	return highlight.NewRenderer(idx, highlight.Options{
		AutoHighlight: force || cfg.Overlay.AutoHighlight,
		MinLength:     cfg.Overlay.MinTermLength,
	})
}

// localService is an in-process explanation service and the database
// behind it. Close releases the database.
type localService struct {
	*explain.Service
	db *db.DB
}

func (l *localService) Close() error { return l.db.Close() }

// openLocalService wires the explanation service against the configured
// database and LLM provider.
func openLocalService(cfg *config.Config, idx *terms.Index, logger *slog.Logger) (*localService, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	svc := explain.NewService(explain.Config{
		Store:    explain.NewStore(database),
		Provider: provider,
		Model:    cfg.Model,
		Index:    idx,
		Logger:   logger,
	})
	return &localService{Service: svc, db: database}, nil
}

// newClient returns an HTTP client for the configured server's explain
// endpoint.
func newClient(cfg *config.Config) (*client.Client, error) {
	path := cfg.Overlay.APIEndpoint
	if path == "" {
		path = overlay.DefaultOptions().APIEndpoint
	}
	endpoint, err := client.Endpoint(cfg.ServerURL(), path)
	if err != nil {
		return nil, err
	}
	return client.New(endpoint), nil
}
