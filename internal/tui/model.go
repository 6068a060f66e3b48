package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

// Overlay is the part of *overlay.Session the reader drives.
type Overlay interface {
	HoverEnter(text string, rect overlay.Rect)
	HoverLeave()
	PointerDown(insideOverlay bool)
	Scroll(dx, dy float64)
	Resize(vp overlay.Viewport)
	Hide()
}

// footerHeight is the rows reserved below the page.
const footerHeight = 1

// Model is the reader's bubbletea model.
type Model struct {
	doc     *Document
	overlay Overlay
	surface *Surface
	keys    KeyMap
	title   string

	width  int
	height int
	offset int
	// cursor indexes doc.Markers(); -1 when no marker is hovered.
	cursor int
	view   overlay.View
}

// NewModel creates a reader over doc. surface may be nil in tests.
func NewModel(title string, doc *Document, ov Overlay, surface *Surface) Model {
	doc.Layout(0)
	return Model{
		doc:     doc,
		overlay: ov,
		surface: surface,
		keys:    DefaultKeyMap(),
		title:   title,
		cursor:  -1,
		view:    overlay.View{State: overlay.StateHidden},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case MsgView:
		m.view = msg.View
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.scrollTo(m.offset + 1)
		case key.Matches(msg, m.keys.Up):
			m.scrollTo(m.offset - 1)
		case key.Matches(msg, m.keys.Dismiss):
			m.cursor = -1
			m.overlay.PointerDown(false)
		}
	}
	return m, nil
}

func (m *Model) pageHeight() int {
	h := m.height - footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.doc.Layout(w)
	if m.surface != nil {
		m.surface.SetViewportWidth(w)
	}
	// markers move on reflow
	if m.cursor >= 0 {
		m.cursor = -1
		m.overlay.Hide()
	}
	m.offset = m.clampOffset(m.offset)
	m.overlay.Resize(overlay.Viewport{Width: float64(w), Height: float64(m.pageHeight())})
}

func (m *Model) clampOffset(off int) int {
	maxOff := m.doc.Lines() - m.pageHeight()
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}

// scrollTo moves the page and tells the overlay how far its anchor moved.
func (m *Model) scrollTo(off int) {
	off = m.clampOffset(off)
	if off == m.offset {
		return
	}
	dy := m.offset - off
	m.offset = off
	m.overlay.Scroll(0, float64(dy))
}

func (m *Model) moveCursor(step int) {
	markers := m.doc.Markers()
	if len(markers) == 0 {
		return
	}
	next := 0
	switch {
	case m.cursor >= 0:
		next = (m.cursor + step + len(markers)) % len(markers)
		m.overlay.HoverLeave()
	case step < 0:
		next = len(markers) - 1
	}
	m.cursor = next

	mk := markers[next]
	switch {
	case mk.Line < m.offset:
		m.scrollTo(mk.Line)
	case mk.Line >= m.offset+m.pageHeight():
		m.scrollTo(mk.Line - m.pageHeight() + 1)
	}
	m.overlay.HoverEnter(mk.Text, m.anchor(mk))
}

// anchor returns the marker's rectangle relative to the visible page.
func (m *Model) anchor(mk Marker) overlay.Rect {
	return overlay.Rect{
		Top:    float64(mk.Line - m.offset),
		Left:   float64(mk.Col),
		Width:  float64(mk.Width),
		Height: 1,
	}
}

// View implements tea.Model.
func (m Model) View() string {
	page := m.renderPage()
	if m.view.State != overlay.StateHidden {
		page = m.paintTooltip(page)
	}
	return strings.Join(page, "\n") + "\n" + m.renderFooter()
}

func (m Model) renderPage() []string {
	var active *Marker
	if m.cursor >= 0 && m.cursor < len(m.doc.Markers()) {
		active = &m.doc.Markers()[m.cursor]
	}

	rows := make([]string, 0, m.pageHeight())
	for i := m.offset; i < m.offset+m.pageHeight(); i++ {
		if i >= m.doc.Lines() {
			rows = append(rows, "")
			continue
		}
		ln := m.doc.lines[i]
		var b strings.Builder
		col := 0
		for _, sp := range ln.spans {
			switch {
			case sp.Marked && active != nil && active.Line == i && active.Col == col:
				b.WriteString(styleMarkerActive.Render(sp.Text))
			case sp.Marked:
				b.WriteString(styleMarker.Render(sp.Text))
			case ln.kind == kindCode:
				b.WriteString(styleCode.Render(sp.Text))
			case ln.kind == kindHeading:
				b.WriteString(styleHeading.Render(sp.Text))
			default:
				b.WriteString(sp.Text)
			}
			col += lipgloss.Width(sp.Text)
		}
		rows = append(rows, b.String())
	}
	return rows
}

// paintTooltip replaces the rows the tooltip covers with the tooltip box
// indented to its left offset.
func (m Model) paintTooltip(rows []string) []string {
	width := maxTooltipWidth
	if m.surface != nil {
		width = m.surface.boxWidth()
	}
	box := strings.Split(renderTooltip(m.view, width), "\n")
	top := int(m.view.Top)
	indent := strings.Repeat(" ", max(0, int(m.view.Left)))
	for i, b := range box {
		r := top + i
		if r < 0 || r >= len(rows) {
			continue
		}
		rows[r] = indent + b
	}
	return rows
}

func (m Model) renderFooter() string {
	var parts []string
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	status := fmt.Sprintf("%s  %d terms", m.title, len(m.doc.Markers()))
	if m.cursor >= 0 {
		status = fmt.Sprintf("%s  %d/%d", m.title, m.cursor+1, len(m.doc.Markers()))
	}
	return styleFooter.Render(status + "  •  " + strings.Join(parts, " · "))
}
