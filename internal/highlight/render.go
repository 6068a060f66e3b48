package highlight

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/ziadkadry99/termlens/internal/terms"
)

// Options control page rendering.
type Options struct {
	// AutoHighlight enables the marker pass. When false pages render
	// without markers.
	AutoHighlight bool
	MinLength     int
}

// Renderer converts markdown pages to HTML with term markers.
type Renderer struct {
	md   goldmark.Markdown
	idx  *terms.Index
	opts Options
}

// NewRenderer builds a renderer over idx.
func NewRenderer(idx *terms.Index, opts Options) *Renderer {
	exts := []goldmark.Extender{
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	}
	if opts.AutoHighlight {
		exts = append(exts, &Extension{Index: idx, MinLength: opts.MinLength})
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md, idx: idx, opts: opts}
}

// Render converts markdown source to HTML.
func (r *Renderer) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Find returns the distinct canonical terms Render marks in source,
// sorted. Without AutoHighlight nothing is marked and the result is empty.
func (r *Renderer) Find(source []byte) []string {
	if !r.opts.AutoHighlight {
		return []string{}
	}
	doc := r.md.Parser().Parse(text.NewReader(source))

	seen := make(map[string]struct{})
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if m, ok := n.(*Marker); ok && entering {
			seen[m.Term] = struct{}{}
		}
		return ast.WalkContinue, nil
	})

	found := make([]string, 0, len(seen))
	for t := range seen {
		found = append(found, t)
	}
	sort.Strings(found)
	return found
}
