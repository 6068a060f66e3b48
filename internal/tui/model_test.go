package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlens/internal/overlay"
	"github.com/ziadkadry99/termlens/internal/terms"
)

// recordingOverlay logs every call the model makes.
type recordingOverlay struct {
	calls []string
}

func (r *recordingOverlay) HoverEnter(text string, rect overlay.Rect) {
	r.calls = append(r.calls, fmt.Sprintf("enter %s %v,%v", text, rect.Top, rect.Left))
}

func (r *recordingOverlay) HoverLeave() {
	r.calls = append(r.calls, "leave")
}

func (r *recordingOverlay) PointerDown(inside bool) {
	r.calls = append(r.calls, fmt.Sprintf("down %v", inside))
}

func (r *recordingOverlay) Scroll(dx, dy float64) {
	r.calls = append(r.calls, fmt.Sprintf("scroll %v", dy))
}

func (r *recordingOverlay) Hide() {
	r.calls = append(r.calls, "hide")
}

func (r *recordingOverlay) Resize(vp overlay.Viewport) {
	r.calls = append(r.calls, fmt.Sprintf("resize %vx%v", vp.Width, vp.Height))
}

func (r *recordingOverlay) take() []string {
	c := r.calls
	r.calls = nil
	return c
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
	keyQuit     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func newTestModel(t *testing.T, height int) (Model, *recordingOverlay) {
	t.Helper()
	rec := &recordingOverlay{}
	m := NewModel("guide.md", NewDocument(sampleDoc, terms.Default(), 3), rec, nil)
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: height})
	rec.take()
	return m, rec
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelResizeReportsViewport(t *testing.T) {
	rec := &recordingOverlay{}
	m := NewModel("guide.md", NewDocument(sampleDoc, terms.Default(), 3), rec, nil)
	update(m, tea.WindowSizeMsg{Width: 80, Height: 6})
	assert.Equal(t, []string{"resize 80x5"}, rec.take())
}

func TestModelTabWalksMarkers(t *testing.T) {
	m, rec := newTestModel(t, 6)

	m = update(m, keyTab)
	assert.Equal(t, []string{"enter container 2,11"}, rec.take())

	m = update(m, keyTab)
	assert.Equal(t, []string{"leave", "enter Kubernetes 2,26"}, rec.take())

	// api is below the fold, so the page scrolls first
	m = update(m, keyTab)
	assert.Equal(t, []string{"leave", "scroll -4", "enter api 4,20"}, rec.take())
	assert.Equal(t, 4, m.offset)

	// wraps around and scrolls back up
	m = update(m, keyTab)
	assert.Equal(t, []string{"leave", "scroll 2", "enter container 0,11"}, rec.take())
	assert.Equal(t, 0, m.cursor)
}

func TestModelShiftTabStartsAtLastMarker(t *testing.T) {
	m, rec := newTestModel(t, 20)
	m = update(m, keyShiftTab)
	assert.Equal(t, []string{"enter api 8,20"}, rec.take())
	assert.Equal(t, 2, m.cursor)

	update(m, keyShiftTab)
	assert.Equal(t, []string{"leave", "enter Kubernetes 2,26"}, rec.take())
}

func TestModelEscDismisses(t *testing.T) {
	m, rec := newTestModel(t, 20)
	m = update(m, keyTab)
	rec.take()

	m = update(m, keyEsc)
	assert.Equal(t, []string{"down false"}, rec.take())
	assert.Equal(t, -1, m.cursor)
}

func TestModelScrollKeys(t *testing.T) {
	m, rec := newTestModel(t, 6)

	m = update(m, keyUp)
	assert.Empty(t, rec.take(), "already at the top")

	m = update(m, keyDown)
	m = update(m, keyDown)
	assert.Equal(t, []string{"scroll -1", "scroll -1"}, rec.take())
	assert.Equal(t, 2, m.offset)

	for range 10 {
		m = update(m, keyDown)
	}
	assert.Equal(t, 4, m.offset, "clamped to the last page")
}

func TestModelResizeHidesActiveMarker(t *testing.T) {
	m, rec := newTestModel(t, 20)
	m = update(m, keyTab)
	rec.take()

	m = update(m, tea.WindowSizeMsg{Width: 20, Height: 20})
	assert.Equal(t, []string{"hide", "resize 20x19"}, rec.take())
	assert.Equal(t, -1, m.cursor)
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, 20)
	_, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelNoMarkers(t *testing.T) {
	rec := &recordingOverlay{}
	m := NewModel("plain.md", NewDocument("nothing to see here", terms.Default(), 3), rec, nil)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: 5})
	rec.take()
	update(m, keyTab)
	assert.Empty(t, rec.take())
}

func TestModelViewPaintsTooltip(t *testing.T) {
	m, _ := newTestModel(t, 20)
	m = update(m, keyTab)
	m = update(m, MsgView{View: overlay.View{
		State:     overlay.StateShown,
		Term:      "container",
		Content:   "A box that carries an app.",
		Top:       3,
		Left:      5,
		Placement: overlay.PlaceBelow,
	}})

	rows := strings.Split(m.View(), "\n")
	require.Len(t, rows, 20)
	assert.True(t, strings.HasPrefix(rows[3], "     "), "tooltip indented to its left offset")
	assert.Contains(t, rows[4], "A box that carries an app.")
	assert.Contains(t, rows[19], "1/3")

	m = update(m, MsgView{View: overlay.View{State: overlay.StateHidden}})
	assert.NotContains(t, m.View(), "A box that carries an app.")
}

func TestReaderShowsExplanation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	surface := NewSurface()
	defer surface.Close()
	msgs := make(chan tea.Msg, 16)
	surface.Attach(func(msg tea.Msg) { msgs <- msg })

	session, err := overlay.New(overlay.Config{
		Options: Options(overlay.DefaultOptions()),
		Explainer: overlay.ExplainerFunc(func(ctx context.Context, term string) (string, error) {
			return "A box for apps.", nil
		}),
		Surface: surface,
	})
	require.NoError(t, err)
	go func() { _ = session.Run(ctx) }()

	m := NewModel("guide.md", NewDocument(sampleDoc, terms.Default(), 3), session, surface)
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m = update(m, keyTab)

	deadline := time.After(2 * time.Second)
	for m.view.State != overlay.StateShown {
		select {
		case msg := <-msgs:
			m = update(m, msg)
		case <-deadline:
			t.Fatal("explanation never shown")
		}
	}

	assert.Equal(t, "container", m.view.Term)
	assert.Equal(t, overlay.PlaceBelow, m.view.Placement)
	assert.Equal(t, float64(3), m.view.Top)
	assert.Contains(t, m.View(), "A box for apps.")
}
