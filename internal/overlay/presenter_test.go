package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func showCached(h *harness, term, explanation string) {
	h.t.Helper()
	h.selectTerm(term)
	h.explainer.release(term, explanation, nil)
	h.settled()
	require.Equal(h.t, StateShown, h.surface.last().State)
}

func TestAutoHideAfterTimeout(t *testing.T) {
	h := newHarness(t, nil)
	showCached(h, "Git", "A time machine for files.")

	h.clock.Advance(9 * time.Second)
	h.sync()
	assert.Equal(t, StateShown, h.surface.last().State)

	h.clock.Advance(time.Second)
	h.sync()
	snap := h.snapshot()
	assert.Equal(t, StateHidden, snap.View.State)
	assert.Empty(t, snap.CurrentTerm)
	assert.False(t, snap.HasAnchor)
}

func TestShowRestartsAutoHide(t *testing.T) {
	h := newHarness(t, nil)
	showCached(h, "Git", "A time machine for files.")

	h.clock.Advance(8 * time.Second)
	h.selectTerm("git")
	h.clock.Advance(8 * time.Second)
	h.sync()

	assert.Equal(t, StateShown, h.surface.last().State)
}

func TestPointerDownOutsideDismisses(t *testing.T) {
	h := newHarness(t, nil)
	showCached(h, "Git", "A time machine for files.")

	h.session.PointerDown(true)
	h.sync()
	assert.Equal(t, StateShown, h.surface.last().State)

	h.session.PointerDown(false)
	h.sync()
	assert.Equal(t, StateHidden, h.surface.last().State)
	assert.Empty(t, h.snapshot().CurrentTerm)
}

func TestResizeRepositions(t *testing.T) {
	h := newHarness(t, nil)
	showCached(h, "Git", "A time machine for files.")
	assert.Equal(t, 330.0, h.surface.last().Left)

	h.session.Resize(Viewport{Width: 450, Height: 768})
	h.sync()

	v := h.surface.last()
	assert.Equal(t, StateShown, v.State)
	assert.Equal(t, 240.0, v.Left)
}

func TestScrollMovesAnchor(t *testing.T) {
	h := newHarness(t, nil)
	showCached(h, "Git", "A time machine for files.")

	h.session.Scroll(0, 250)
	h.sync()

	v := h.surface.last()
	assert.Equal(t, PlaceBelow, v.Placement)
	assert.Equal(t, 80.0, v.Top)
}

func TestRepositionWithoutAnchorHides(t *testing.T) {
	h := newHarness(t, nil)
	showCached(h, "Git", "A time machine for files.")

	h.session.Reanchor(nil)
	h.sync()

	assert.Equal(t, StateHidden, h.surface.last().State)
}

func TestRepositionWhileHiddenDoesNothing(t *testing.T) {
	h := newHarness(t, nil)

	h.session.Resize(Viewport{Width: 800, Height: 600})
	h.session.Scroll(0, 10)
	h.sync()

	assert.Equal(t, 0, h.surface.count())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "hidden", StateHidden.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "shown", StateShown.String())
}

func TestStateTextRoundTrip(t *testing.T) {
	for _, st := range []State{StateHidden, StateLoading, StateShown} {
		b, err := st.MarshalText()
		require.NoError(t, err)
		var got State
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, st, got)
	}
	var bad State
	assert.Error(t, bad.UnmarshalText([]byte("floating")))
}
