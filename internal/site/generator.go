// Package site builds a static HTML site from a markdown docs tree. Known
// terms are marked on every page and a small script connects the page to
// a termlens server's live overlay.
package site

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ziadkadry99/termlens/internal/highlight"
	"github.com/ziadkadry99/termlens/internal/walker"
)

// SiteGenerator converts markdown documentation into a static HTML site.
type SiteGenerator struct {
	DocsDir     string
	OutputDir   string
	ProjectName string
	// LiveURL is the overlay websocket pages connect to. Empty means
	// /overlay/ws on the host serving the page.
	LiveURL  string
	Renderer *highlight.Renderer
	Include  []string
	Exclude  []string
}

// NewSiteGenerator creates a SiteGenerator with the given directories.
func NewSiteGenerator(docsDir, outputDir, projectName string, renderer *highlight.Renderer) *SiteGenerator {
	return &SiteGenerator{
		DocsDir:     docsDir,
		OutputDir:   outputDir,
		ProjectName: projectName,
		Renderer:    renderer,
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	TreeHTML    template.HTML
	BasePath    string
	LiveURL     string
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Generate builds the site and returns the number of pages written.
func (g *SiteGenerator) Generate() (int, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: g.DocsDir,
		Include: g.Include,
		Exclude: g.Exclude,
	})
	if err != nil {
		return 0, fmt.Errorf("walking docs dir: %w", err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", g.DocsDir)
	}

	sources := make(map[string][]byte, len(files))
	titles := make(map[string]string, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		sources[f.RelPath] = content
		titles[f.RelPath] = extractTitle(string(content), f.RelPath)
		paths = append(paths, f.RelPath)
	}
	tree := BuildTree(paths, titles)

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "overlay.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	for _, p := range paths {
		if err := g.renderPage(tree, p, sources[p], titles[p]); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", p, err)
		}
	}
	return len(paths), nil
}

// renderPage converts a single markdown file to an HTML page.
func (g *SiteGenerator) renderPage(tree *FileTree, relPath string, source []byte, title string) error {
	body, err := g.Renderer.Render(source)
	if err != nil {
		return err
	}

	htmlRelPath := pageHTMLPath(relPath)
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	basePath := strings.Repeat("../", strings.Count(htmlRelPath, "/"))
	data := pageData{
		Title:       title,
		ProjectName: g.ProjectName,
		Content:     template.HTML(rewriteMDLinks(body)),
		TreeHTML:    template.HTML(tree.ToHTML(relPath, basePath)),
		BasePath:    basePath,
		LiveURL:     g.LiveURL,
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return pageTmpl.Execute(f, data)
}

// extractTitle pulls the first # heading from markdown content, or falls
// back to the file name.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

var mdLink = regexp.MustCompile(`href="([^":]*?)\.(?:md|markdown)(#[^"]*)?"`)

// rewriteMDLinks points relative links at other markdown pages to their
// generated HTML. Absolute URLs are left alone.
func rewriteMDLinks(content string) string {
	return mdLink.ReplaceAllString(content, `href="$1.html$2"`)
}
