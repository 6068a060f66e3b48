package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Overlay.APIEndpoint != "/simplifier/explain" {
		t.Errorf("expected default endpoint, got %q", cfg.Overlay.APIEndpoint)
	}
	if cfg.Overlay.AutoHide != 10*time.Second {
		t.Errorf("expected default auto_hide 10s, got %v", cfg.Overlay.AutoHide)
	}
	if cfg.DBPath() != filepath.Join(".termlens", "termlens.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.termlens.yml")

	original := DefaultConfig()
	original.Provider = ProviderOllama
	original.Model = "llama3:8b"
	original.TermsFile = "glossary.txt"
	original.Server.Port = 9090
	original.Overlay.PreferredPosition = "below"
	original.Overlay.HoverGrace = 450 * time.Millisecond
	original.Overlay.CacheLimit = 100

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.TermsFile != original.TermsFile {
		t.Errorf("terms_file: got %q, want %q", loaded.TermsFile, original.TermsFile)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Overlay.HoverGrace != 450*time.Millisecond {
		t.Errorf("overlay.hover_grace: got %v, want 450ms", loaded.Overlay.HoverGrace)
	}
	if loaded.Overlay.PreferredPosition != "below" {
		t.Errorf("overlay.preferred_position: got %q", loaded.Overlay.PreferredPosition)
	}
	if loaded.Overlay.CacheLimit != 100 {
		t.Errorf("overlay.cache_limit: got %d", loaded.Overlay.CacheLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("TERMLENS_RATE_LIMIT_RPM", "12")
	t.Setenv("TERMLENS_SERVER__PORT", "9191")
	t.Setenv("TERMLENS_OVERLAY__AUTO_HIDE", "3s")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.RateLimitRPM != 12 {
		t.Errorf("env override failed: got %d, want 12", loaded.RateLimitRPM)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("nested env override failed: got %d, want 9191", loaded.Server.Port)
	}
	if loaded.Overlay.AutoHide != 3*time.Second {
		t.Errorf("duration env override failed: got %v", loaded.Overlay.AutoHide)
	}
}

func TestLoadProviderPicksDefaultModel(t *testing.T) {
	t.Setenv("TERMLENS_PROVIDER", "ollama")

	loaded, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Model != "llama3" {
		t.Errorf("expected ollama default model, got %q", loaded.Model)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"TERMLENS_PROVIDER":                      "provider",
		"TERMLENS_SERVER__ALLOW_ALL_ORIGINS":     "server.allow_all_origins",
		"TERMLENS_OVERLAY__MAX_SELECTION_LENGTH": "overlay.max_selection_length",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty provider", func(c *Config) { c.Provider = "" }},
		{"invalid provider", func(c *Config) { c.Provider = "anthropic" }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }},
		{"negative rpm", func(c *Config) { c.RateLimitRPM = -5 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad position", func(c *Config) { c.Overlay.PreferredPosition = "left" }},
		{"negative cache limit", func(c *Config) { c.Overlay.CacheLimit = -1 }},
		{"negative delay", func(c *Config) { c.Overlay.HoverGrace = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOverlayOptionsRoundTrip(t *testing.T) {
	opts := overlay.DefaultOptions()
	opts.PreferredPosition = overlay.PlaceBelow
	opts.CacheLimit = 7

	got := OverlayFromOptions(opts).Options()
	if got.PreferredPosition != overlay.PlaceBelow || got.CacheLimit != 7 {
		t.Errorf("unexpected options %+v", got)
	}
	if got.LoadingMessage != overlay.DefaultLoadingMessage {
		t.Errorf("expected default loading message, got %q", got.LoadingMessage)
	}
}

func TestServerURL(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ServerURL(); got != "http://localhost:8000" {
		t.Errorf("unexpected default URL %q", got)
	}
	cfg.Server.URL = "https://lens.example.com/"
	if got := cfg.ServerURL(); got != "https://lens.example.com" {
		t.Errorf("unexpected URL %q", got)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := map[ProviderType]string{
		ProviderOpenAI:     "OPENAI_API_KEY",
		ProviderOpenRouter: "OPENROUTER_API_KEY",
		ProviderOllama:     "",
	}
	for p, want := range tests {
		if got := APIKeyEnvVar(p); got != want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", p, got, want)
		}
	}
}

func TestValidatePort(t *testing.T) {
	if err := validatePort("8080"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"abc", "0", "65536"} {
		if err := validatePort(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
