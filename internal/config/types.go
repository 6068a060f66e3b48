package config

import "time"

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level termlens configuration, corresponding to .termlens.yml.
type Config struct {
	Provider       ProviderType  `yaml:"provider" koanf:"provider"`
	Model          string        `yaml:"model" koanf:"model"`
	DataDir        string        `yaml:"data_dir" koanf:"data_dir"`
	TermsFile      string        `yaml:"terms_file" koanf:"terms_file"`
	MaxConcurrency int           `yaml:"max_concurrency" koanf:"max_concurrency"`
	RateLimitRPM   int           `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
	Server         ServerConfig  `yaml:"server" koanf:"server"`
	Overlay        OverlayConfig `yaml:"overlay" koanf:"overlay"`
}

// ServerConfig holds HTTP server settings. URL is where clients reach the
// server; empty means localhost on Port.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	URL             string `yaml:"url,omitempty" koanf:"url"`
}

// OverlayConfig mirrors overlay.Options.
type OverlayConfig struct {
	APIEndpoint        string        `yaml:"api_endpoint" koanf:"api_endpoint"`
	ContainerSelector  string        `yaml:"container_selector" koanf:"container_selector"`
	ContentSelector    string        `yaml:"content_selector" koanf:"content_selector"`
	MaxSelectionLength int           `yaml:"max_selection_length" koanf:"max_selection_length"`
	MinTermLength      int           `yaml:"min_term_length" koanf:"min_term_length"`
	AutoHighlight      bool          `yaml:"auto_highlight" koanf:"auto_highlight"`
	TooltipOffset      float64       `yaml:"tooltip_offset" koanf:"tooltip_offset"`
	Margin             float64       `yaml:"margin" koanf:"margin"`
	PreferredPosition  string        `yaml:"preferred_position" koanf:"preferred_position"`
	SelectionDelay     time.Duration `yaml:"selection_delay" koanf:"selection_delay"`
	HoverDelay         time.Duration `yaml:"hover_delay" koanf:"hover_delay"`
	HoverGrace         time.Duration `yaml:"hover_grace" koanf:"hover_grace"`
	AutoHide           time.Duration `yaml:"auto_hide" koanf:"auto_hide"`
	CacheLimit         int           `yaml:"cache_limit" koanf:"cache_limit"`
}
