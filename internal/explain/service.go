// Package explain turns technical terms into plain-language explanations
// using an LLM, and keeps every good answer in a persistent store.
package explain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/ziadkadry99/termlens/internal/llm"
	"github.com/ziadkadry99/termlens/internal/terms"
)

// FallbackMessage is what older backends answered instead of an error.
// Clients treat it as "no explanation".
const FallbackMessage = "Sorry, I couldn't explain that term right now."

var (
	ErrEmptyTerm     = errors.New("term cannot be empty")
	ErrExplainFailed = errors.New("failed to generate explanation")
)

const (
	maxTokens   = 100
	temperature = 0.3

	systemPrompt = "You are a helpful assistant that explains technical terms in extremely simple, " +
		"non-technical language. Your target audience is people with no technical background at all. " +
		"Use everyday analogies, avoid all jargon, and keep explanations under 2-3 short sentences. " +
		"Use the simplest language possible, like explaining to a child."
)

// Result is the answer for one term.
type Result struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
	Cached      bool   `json:"cached"`
}

// Stats describes the explanation cache.
type Stats struct {
	Total int      `json:"total_cached_terms"`
	Terms []string `json:"cached_terms"`
}

// Config wires a Service.
type Config struct {
	Store    *Store
	Provider llm.Provider
	Model    string
	Index    *terms.Index
	// Timeout bounds one LLM completion. Zero means 30s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Service answers explain requests.
type Service struct {
	store    *Store
	provider llm.Provider
	model    string
	index    *terms.Index
	timeout  time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService creates a Service.
func NewService(cfg Config) *Service {
	s := &Service{
		store:    cfg.Store,
		provider: cfg.Provider,
		model:    cfg.Model,
		index:    cfg.Index,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if s.index == nil {
		s.index = terms.Default()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Index returns the term index the service classifies against.
func (s *Service) Index() *terms.Index { return s.index }

// Explain returns the explanation for term. Passage is optional text the
// term appeared in. Identical concurrent requests share one completion.
func (s *Service) Explain(ctx context.Context, term, passage string) (*Result, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		explainTotal.WithLabelValues("rejected").Inc()
		return nil, ErrEmptyTerm
	}
	key := terms.Canonical(term)

	if e, ok, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("explanation lookup failed", "term", key, "err", err)
	} else if ok {
		explainTotal.WithLabelValues("hit").Inc()
		s.logger.Debug("explanation cache hit", "term", key, "hits", e.Hits)
		return &Result{Term: term, Explanation: e.Explanation, Cached: true}, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		return s.generate(ctx, key, term, passage)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			explainTotal.WithLabelValues("failed").Inc()
			return nil, r.Err
		}
		if r.Shared {
			explainTotal.WithLabelValues("shared").Inc()
		} else {
			explainTotal.WithLabelValues("generated").Inc()
		}
		return &Result{Term: term, Explanation: r.Val.(string)}, nil
	}
}

// generate runs one completion detached from the caller's cancellation,
// since other callers may be sharing it.
func (s *Service) generate(ctx context.Context, key, display, passage string) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("%w: no LLM provider configured", ErrExplainFailed)
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Explain '%s' in the simplest way possible. No technical terms allowed.", display)
	if passage != "" {
		prompt += fmt.Sprintf(" It appeared in this text: %q", passage)
	}

	s.logger.Info("generating explanation", "term", key, "provider", s.provider.Name())
	start := time.Now()
	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	llmDuration.WithLabelValues(s.provider.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("explanation failed", "term", key, "err", err)
		return "", fmt.Errorf("%w: %v", ErrExplainFailed, err)
	}

	explanation := strings.TrimSpace(resp.Content)
	if explanation == "" || strings.EqualFold(explanation, FallbackMessage) {
		return "", fmt.Errorf("%w: empty completion", ErrExplainFailed)
	}

	if _, err := s.store.Put(ctx, key, display, explanation); err != nil {
		s.logger.Warn("explanation not stored", "term", key, "err", err)
	} else if n, err := s.store.Count(ctx); err == nil {
		cacheEntries.Set(float64(n))
	}
	return explanation, nil
}

// IsTechnicalTerm guesses whether term deserves an explanation: indexed
// terms always do, short unknown words never do.
func (s *Service) IsTechnicalTerm(term string) bool {
	key := terms.Canonical(term)
	if key == "" {
		return false
	}
	if s.index.Contains(key) {
		return true
	}
	return utf8.RuneCountInString(key) > 4
}

// Stats reports the cached terms.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	keys, err := s.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Total: len(keys), Terms: keys}, nil
}

// Clear drops every cached explanation and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	cacheEntries.Set(0)
	s.logger.Info("explanation cache cleared", "removed", n)
	return n, nil
}

// Lookup adapts the service to overlay.Explainer.
func (s *Service) Lookup(ctx context.Context, term string) (string, error) {
	r, err := s.Explain(ctx, term, "")
	if err != nil {
		return "", err
	}
	return r.Explanation, nil
}
