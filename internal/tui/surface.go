package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

const (
	maxTooltipWidth = 48
	minTooltipWidth = 16
	pendingViews    = 32
)

// MsgView carries a new overlay view from the session to the model.
type MsgView struct {
	View overlay.View
}

// Surface implements overlay.Surface for the terminal. Views are queued
// and forwarded to the program in order by a pump goroutine, so the
// session loop never waits on the program's event loop.
type Surface struct {
	mu     sync.Mutex
	width  int
	closed bool

	views chan overlay.View
	once  sync.Once
}

// Verify Surface satisfies overlay.Surface at compile time.
var _ overlay.Surface = (*Surface)(nil)

// NewSurface creates a surface. Views rendered before Attach are queued.
func NewSurface() *Surface {
	return &Surface{
		width: maxTooltipWidth,
		views: make(chan overlay.View, pendingViews),
	}
}

// Attach starts forwarding views to send, typically tea.Program.Send.
// Only the first call has any effect.
func (s *Surface) Attach(send func(tea.Msg)) {
	s.once.Do(func() {
		go func() {
			for v := range s.views {
				send(MsgView{View: v})
			}
		}()
	})
}

// Close stops the pump. Later views are dropped.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.views)
	}
}

// SetViewportWidth limits tooltip width to fit a terminal of w cells.
func (s *Surface) SetViewportWidth(w int) {
	s.mu.Lock()
	s.width = tooltipWidth(w)
	s.mu.Unlock()
}

func (s *Surface) boxWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

// Measure implements overlay.Surface.
func (s *Surface) Measure(content string) overlay.Size {
	box := renderTooltip(overlay.View{State: overlay.StateShown, Content: content}, s.boxWidth())
	return overlay.Size{
		Width:  float64(lipgloss.Width(box)),
		Height: float64(lipgloss.Height(box)),
	}
}

// Render implements overlay.Surface. When the program falls behind the
// oldest queued view is discarded, so the newest view always arrives.
func (s *Surface) Render(v overlay.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.views <- v:
			return
		default:
		}
		select {
		case <-s.views:
		default:
		}
	}
}

func tooltipWidth(viewport int) int {
	w := viewport - 2
	if w > maxTooltipWidth {
		w = maxTooltipWidth
	}
	if w < minTooltipWidth {
		w = minTooltipWidth
	}
	return w
}

// renderTooltip draws v as a bordered box at most width cells wide.
func renderTooltip(v overlay.View, width int) string {
	style := styleTooltip
	if v.State == overlay.StateLoading {
		style = styleTooltipLoading
	}
	// border and padding take four cells
	inner := width - 4
	content := strings.Join(wrap(v.Content, inner), "\n")
	if lipgloss.Width(content) < inner {
		inner = lipgloss.Width(content)
	}
	return style.Width(inner + 2).Render(content)
}
