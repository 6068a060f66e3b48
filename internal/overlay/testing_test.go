package overlay

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlens/internal/terms"
)

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs due callbacks in deadline order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

type reply struct {
	explanation string
	err         error
}

// gatedExplainer blocks each call until the test releases a reply for
// the call's canonical term.
type gatedExplainer struct {
	mu    sync.Mutex
	calls map[string]int
	gates map[string]chan reply
}

func newGatedExplainer() *gatedExplainer {
	return &gatedExplainer{calls: make(map[string]int), gates: make(map[string]chan reply)}
}

func (g *gatedExplainer) gate(key string) chan reply {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[key]
	if !ok {
		ch = make(chan reply, 8)
		g.gates[key] = ch
	}
	return ch
}

func (g *gatedExplainer) Explain(ctx context.Context, term string) (string, error) {
	key := terms.Canonical(term)
	g.mu.Lock()
	g.calls[key]++
	g.mu.Unlock()
	select {
	case r := <-g.gate(key):
		return r.explanation, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *gatedExplainer) release(term, explanation string, err error) {
	g.gate(terms.Canonical(term)) <- reply{explanation: explanation, err: err}
}

func (g *gatedExplainer) callCount(term string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[terms.Canonical(term)]
}

// recordingSurface keeps every rendered view.
type recordingSurface struct {
	mu    sync.Mutex
	size  Size
	views []View
}

func (r *recordingSurface) Measure(string) Size { return r.size }

func (r *recordingSurface) Render(v View) {
	r.mu.Lock()
	r.views = append(r.views, v)
	r.mu.Unlock()
}

func (r *recordingSurface) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *recordingSurface) last() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return View{}
	}
	return r.views[len(r.views)-1]
}

func (r *recordingSurface) rendered(content string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.views {
		if v.State == StateShown && v.Content == content {
			n++
		}
	}
	return n
}

type fakeSelection struct {
	mu    sync.Mutex
	sel   Selection
	reads int
}

func (f *fakeSelection) set(text string, rect Rect) {
	f.mu.Lock()
	f.sel = Selection{Text: text, Rect: rect}
	f.mu.Unlock()
}

func (f *fakeSelection) Selection() Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.sel
}

type harness struct {
	t         *testing.T
	ctx       context.Context
	session   *Session
	explainer *gatedExplainer
	surface   *recordingSurface
	clock     *manualClock
	selection *fakeSelection
}

var testAnchor = Rect{Top: 300, Left: 400, Width: 60, Height: 20}

func newHarness(t *testing.T, mutate func(*Options)) *harness {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	h := &harness{
		t:         t,
		explainer: newGatedExplainer(),
		surface:   &recordingSurface{size: Size{Width: 200, Height: 50}},
		clock:     &manualClock{},
		selection: &fakeSelection{},
	}
	s, err := New(Config{
		Options:   opts,
		Explainer: h.explainer,
		Surface:   h.surface,
		Selection: h.selection,
		Viewport:  Viewport{Width: 1024, Height: 768},
		Clock:     h.clock,
	})
	require.NoError(t, err)
	h.session = s

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h.ctx = ctx
	go func() { _ = s.Run(ctx) }()
	return h
}

func (h *harness) sync() {
	h.t.Helper()
	require.NoError(h.t, h.session.Sync(h.ctx))
}

func (h *harness) snapshot() Snapshot {
	h.t.Helper()
	snap, err := h.session.Snapshot(h.ctx)
	require.NoError(h.t, err)
	return snap
}

// settled waits until no request or waiter is outstanding.
func (h *harness) settled() {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		snap, err := h.session.Snapshot(h.ctx)
		return err == nil && snap.InFlight == 0 && snap.Waiting == 0
	}, testWait, testTick)
}

func (h *harness) selectTerm(text string) {
	h.session.Select(Selection{Text: text, Rect: testAnchor})
	h.sync()
}

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

func (f *fakeSelection) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}
