package explain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// explainTotal counts explain calls by outcome.
	explainTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "termlens_explain_requests_total",
		Help: "Explain requests by outcome (hit, generated, shared, failed, rejected)",
	}, []string{"outcome"})

	// llmDuration tracks completion latency.
	llmDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "termlens_llm_duration_seconds",
		Help:    "LLM completion latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
	}, []string{"provider"})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "termlens_cache_entries",
		Help: "Explanations currently stored",
	})
)
