// Package overlay is the term explanation overlay engine.
//
// A Session owns all per-page state: the explanation cache, the in-flight
// registry, the current term and anchor, and the presenter state machine.
// Host events, timer expiries and request settlements are all executed on
// the session's single event-loop goroutine, so none of that state is
// locked. Explanation requests run on their own goroutines and report back
// by posting onto the loop.
package overlay

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Explainer resolves a term to an explanation. Implementations are called
// from their own goroutine and may block.
type Explainer interface {
	Explain(ctx context.Context, term string) (string, error)
}

// ExplainerFunc adapts a function to Explainer.
type ExplainerFunc func(ctx context.Context, term string) (string, error)

// Explain implements Explainer.
func (f ExplainerFunc) Explain(ctx context.Context, term string) (string, error) {
	return f(ctx, term)
}

// ErrInvalidExplanation reports a successful reply that carried no usable
// explanation.
var ErrInvalidExplanation = errors.New("invalid explanation")

// ErrClosed is returned by calls on a session whose loop has stopped.
var ErrClosed = errors.New("overlay session closed")

// Config wires a Session.
type Config struct {
	Options   Options
	Explainer Explainer
	Surface   Surface
	// Selection is read when a debounced pointer-up fires. Optional.
	Selection SelectionReader
	Viewport  Viewport
	Clock     Clock
	Logger    *slog.Logger
}

type origin int

const (
	originNone origin = iota
	originSelection
	originHover
)

// Session is one page session's overlay engine.
type Session struct {
	opts      Options
	explainer Explainer
	surface   Surface
	selection SelectionReader
	clock     Clock
	logger    *slog.Logger

	events chan func()
	done   chan struct{}
	runCtx context.Context

	// Everything below is owned by the loop goroutine.
	cache      *cache
	inflight   map[string]*Flight
	waiting    int
	fetches    int
	current    string
	currentKey string
	anchor     *Rect
	origin     origin
	viewport   Viewport
	view       View

	selectDelay slot
	hoverDelay  slot
	hoverGrace  slot
	autoHide    slot
}

// New builds a session. Call Run to start its loop.
func New(cfg Config) (*Session, error) {
	if cfg.Explainer == nil {
		return nil, errors.New("overlay: explainer is required")
	}
	if cfg.Surface == nil {
		return nil, errors.New("overlay: surface is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := cfg.Options.normalize()
	return &Session{
		opts:      opts,
		explainer: cfg.Explainer,
		surface:   cfg.Surface,
		selection: cfg.Selection,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		events:    make(chan func(), 64),
		done:      make(chan struct{}),
		runCtx:    context.Background(),
		cache:     newCache(opts.CacheLimit),
		inflight:  make(map[string]*Flight),
		viewport:  cfg.Viewport,
		view:      View{State: StateHidden},
	}, nil
}

// Options returns the effective options.
func (s *Session) Options() Options { return s.opts }

// Run executes the event loop until ctx is done. Pending explanation
// requests are abandoned with ctx; they are not otherwise cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.runCtx = ctx
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			s.disarm(&s.selectDelay)
			s.disarm(&s.hoverDelay)
			s.disarm(&s.hoverGrace)
			s.disarm(&s.autoHide)
			return ctx.Err()
		case fn := <-s.events:
			fn()
		}
	}
}

// post queues fn for the loop. It is dropped once the loop has stopped.
func (s *Session) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

// call runs fn on the loop and waits for it.
func (s *Session) call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	select {
	case s.events <- func() { fn(); close(ran) }:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ran:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sync waits until every event posted before it has been handled.
func (s *Session) Sync(ctx context.Context) error {
	return s.call(ctx, func() {})
}

// Snapshot is a point-in-time copy of session state.
type Snapshot struct {
	View        View
	CurrentTerm string
	HasAnchor   bool
	Cached      int
	InFlight    int
	// Waiting counts callers attached to unsettled flights.
	Waiting int
	// Fetches counts explanation requests issued by this session.
	Fetches int
}

// Snapshot returns the current state.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.call(ctx, func() {
		snap = Snapshot{
			View:        s.view,
			CurrentTerm: s.current,
			HasAnchor:   s.anchor != nil,
			Cached:      s.cache.len(),
			InFlight:    len(s.inflight),
			Waiting:     s.waiting,
			Fetches:     s.fetches,
		}
	})
	return snap, err
}
