package config

import "github.com/ziadkadry99/termlens/internal/overlay"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".termlens.yml"

// defaultModels maps each provider to the model used when none is set.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "openai/gpt-4o-mini",
	ProviderOllama:     "llama3",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		Model:          defaultModels[ProviderOpenAI],
		DataDir:        ".termlens",
		MaxConcurrency: 4,
		RateLimitRPM:   60,
		Server: ServerConfig{
			Port: 8000,
		},
		Overlay: OverlayFromOptions(overlay.DefaultOptions()),
	}
}

// DefaultModel returns the default model for provider, falling back to
// the OpenAI default.
func DefaultModel(provider ProviderType) string {
	if m, ok := defaultModels[provider]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}

// OverlayFromOptions converts engine options to their config form.
func OverlayFromOptions(o overlay.Options) OverlayConfig {
	return OverlayConfig{
		APIEndpoint:        o.APIEndpoint,
		ContainerSelector:  o.ContainerSelector,
		ContentSelector:    o.ContentSelector,
		MaxSelectionLength: o.MaxSelectionLength,
		MinTermLength:      o.MinTermLength,
		AutoHighlight:      o.AutoHighlight,
		TooltipOffset:      o.TooltipOffset,
		Margin:             o.Margin,
		PreferredPosition:  string(o.PreferredPosition),
		SelectionDelay:     o.SelectionDelay,
		HoverDelay:         o.HoverDelay,
		HoverGrace:         o.HoverGrace,
		AutoHide:           o.AutoHide,
		CacheLimit:         o.CacheLimit,
	}
}

// Options converts the config form to engine options. Messages and
// sentinels keep their defaults.
func (c OverlayConfig) Options() overlay.Options {
	o := overlay.DefaultOptions()
	o.APIEndpoint = c.APIEndpoint
	o.ContainerSelector = c.ContainerSelector
	o.ContentSelector = c.ContentSelector
	o.MaxSelectionLength = c.MaxSelectionLength
	o.MinTermLength = c.MinTermLength
	o.AutoHighlight = c.AutoHighlight
	o.TooltipOffset = c.TooltipOffset
	o.Margin = c.Margin
	o.PreferredPosition = overlay.Placement(c.PreferredPosition)
	o.SelectionDelay = c.SelectionDelay
	o.HoverDelay = c.HoverDelay
	o.HoverGrace = c.HoverGrace
	o.AutoHide = c.AutoHide
	o.CacheLimit = c.CacheLimit
	return o
}
