package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/termlens/internal/highlight"
	"github.com/ziadkadry99/termlens/internal/terms"
)

type lineKind int

const (
	kindText lineKind = iota
	kindHeading
	kindCode
)

// line is one display row after wrapping.
type line struct {
	kind  lineKind
	spans []highlight.Span
}

// Marker is a highlighted term's position on the laid-out page, in cells.
type Marker struct {
	Line  int
	Col   int
	Width int
	// Text is the term as it appears on the page.
	Text string
	Term string
}

// Document is a markdown file prepared for terminal reading. Fenced code
// and inline code are never marked.
type Document struct {
	source []string
	idx    *terms.Index
	minLen int

	width   int
	lines   []line
	markers []Marker
}

// NewDocument splits text into lines. Call Layout before reading markers.
func NewDocument(text string, idx *terms.Index, minLen int) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Document{
		source: strings.Split(strings.TrimRight(text, "\n"), "\n"),
		idx:    idx,
		minLen: minLen,
	}
}

// Layout wraps the document to width cells and recomputes markers.
// width <= 0 disables wrapping.
func (d *Document) Layout(width int) {
	d.width = width
	d.lines = nil
	d.markers = nil

	fenced := false
	for _, src := range d.source {
		trimmed := strings.TrimSpace(src)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
			d.lines = append(d.lines, line{kind: kindCode, spans: []highlight.Span{{Text: src}}})
			continue
		}
		if fenced {
			for _, w := range wrap(src, width) {
				d.lines = append(d.lines, line{kind: kindCode, spans: []highlight.Span{{Text: w}}})
			}
			continue
		}

		kind := kindText
		if strings.HasPrefix(trimmed, "#") {
			kind = kindHeading
		}
		for _, w := range wrap(src, width) {
			d.addLine(kind, w)
		}
	}
}

func (d *Document) addLine(kind lineKind, text string) {
	n := len(d.lines)
	spans := d.spans(text)
	col := 0
	for _, sp := range spans {
		w := lipgloss.Width(sp.Text)
		if sp.Marked {
			d.markers = append(d.markers, Marker{Line: n, Col: col, Width: w, Text: sp.Text, Term: sp.Term})
		}
		col += w
	}
	d.lines = append(d.lines, line{kind: kind, spans: spans})
}

// spans marks terms outside backtick code runs.
func (d *Document) spans(text string) []highlight.Span {
	parts := strings.Split(text, "`")
	var out []highlight.Span
	for i, p := range parts {
		if i%2 == 1 {
			if i < len(parts)-1 {
				out = append(out, highlight.Span{Text: "`" + p + "`"})
				continue
			}
			// unbalanced backtick
			p = "`" + p
		}
		if p == "" {
			continue
		}
		if ms := highlight.Spans(p, d.idx, d.minLen); len(ms) > 0 {
			out = append(out, ms...)
		} else {
			out = append(out, highlight.Span{Text: p})
		}
	}
	return out
}

// Lines returns the number of laid-out rows.
func (d *Document) Lines() int { return len(d.lines) }

// Markers returns every marker in reading order.
func (d *Document) Markers() []Marker { return d.markers }

// wrap breaks s at spaces so no row exceeds width cells. Words wider than
// width get a row of their own.
func wrap(s string, width int) []string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return []string{s}
	}
	var rows []string
	var cur strings.Builder
	curW := 0
	for i, word := range strings.Split(s, " ") {
		w := lipgloss.Width(word)
		switch {
		case i == 0:
		case curW+1+w <= width:
			cur.WriteByte(' ')
			curW++
		default:
			rows = append(rows, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteString(word)
		curW += w
	}
	return append(rows, cur.String())
}
