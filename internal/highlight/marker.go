package highlight

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ziadkadry99/termlens/internal/terms"
)

// KindMarker is the node kind of a Marker.
var KindMarker = ast.NewNodeKind("TermMarker")

// MarkerClass is the CSS class rendered on marker elements. Hosts use it
// to find hover targets.
const MarkerClass = "term-highlight"

// processedAttr flags a text container as already scanned. The name has
// no data- prefix so goldmark's attribute filters never render it.
var processedAttr = []byte("termlensProcessed")

// Marker wraps a run of text equal to a known term.
type Marker struct {
	ast.BaseInline
	// Term is the canonical form of the wrapped text.
	Term string
}

// NewMarker returns a marker for the canonical term.
func NewMarker(term string) *Marker {
	return &Marker{Term: term}
}

// Kind implements ast.Node.
func (m *Marker) Kind() ast.NodeKind { return KindMarker }

// Dump implements ast.Node.
func (m *Marker) Dump(source []byte, level int) {
	ast.DumpHelper(m, source, level, map[string]string{"Term": m.Term}, nil)
}

// skipKind lists nodes whose text is not prose: code, raw HTML and links.
func skipKind(k ast.NodeKind) bool {
	switch k {
	case ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock,
		ast.KindHTMLBlock, ast.KindRawHTML, ast.KindAutoLink, ast.KindLink,
		ast.KindImage, KindMarker:
		return true
	}
	return false
}

func hasInlineChild(n ast.Node) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeInline {
			return true
		}
	}
	return false
}

// Apply wraps indexed terms under root in Marker nodes. Text containers
// are flagged as processed, so calling Apply again on the same tree is a
// no-op.
func Apply(root ast.Node, source []byte, idx *terms.Index, minLen int) {
	var pending []*ast.Text
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if skipKind(n.Kind()) {
			return ast.WalkSkipChildren, nil
		}
		if n.Type() == ast.TypeBlock && hasInlineChild(n) {
			if _, done := n.Attribute(processedAttr); done {
				return ast.WalkSkipChildren, nil
			}
			n.SetAttribute(processedAttr, true)
		}
		if t, ok := n.(*ast.Text); ok {
			pending = append(pending, t)
		}
		return ast.WalkContinue, nil
	})

	for _, t := range pending {
		split(t, source, idx, minLen)
	}
}

// split replaces a text node with plain text segments and markers.
func split(t *ast.Text, source []byte, idx *terms.Index, minLen int) {
	spans := Spans(string(t.Segment.Value(source)), idx, minLen)
	if !HasMarks(spans) {
		return
	}
	parent := t.Parent()
	pos := t.Segment.Start
	var last ast.Node
	for _, s := range spans {
		seg := text.NewSegment(pos, pos+len(s.Text))
		pos += len(s.Text)
		piece := ast.NewTextSegment(seg)
		piece.SetRaw(t.IsRaw())
		if s.Marked {
			m := NewMarker(s.Term)
			m.AppendChild(m, piece)
			parent.InsertBefore(parent, t, m)
			last = m
			continue
		}
		parent.InsertBefore(parent, t, piece)
		last = piece
	}

	if t.SoftLineBreak() || t.HardLineBreak() {
		tail, ok := last.(*ast.Text)
		if !ok {
			tail = ast.NewTextSegment(text.NewSegment(pos, pos))
			parent.InsertBefore(parent, t, tail)
		}
		tail.SetSoftLineBreak(t.SoftLineBreak())
		tail.SetHardLineBreak(t.HardLineBreak())
	}
	parent.RemoveChild(parent, t)
}

type transformer struct {
	idx    *terms.Index
	minLen int
}

func (tr *transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	Apply(doc, reader.Source(), tr.idx, tr.minLen)
}

type markerRenderer struct{}

func (r *markerRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMarker, r.render)
}

func (r *markerRenderer) render(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</span>")
		return ast.WalkContinue, nil
	}
	m := n.(*Marker)
	_, _ = w.WriteString(`<span class="` + MarkerClass + `" data-term="`)
	_, _ = w.Write(util.EscapeHTML([]byte(m.Term)))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

// Extension is a goldmark extension that marks indexed terms.
type Extension struct {
	Index     *terms.Index
	MinLength int
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&transformer{idx: e.Index, minLen: e.MinLength}, 999),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&markerRenderer{}, 500),
	))
}
