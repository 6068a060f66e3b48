package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/termlens/internal/highlight"
	"github.com/ziadkadry99/termlens/internal/terms"
)

func TestBuildTree(t *testing.T) {
	paths := []string{
		"index.md",
		"guides/deploy.md",
		"guides/getting-started.md",
		"reference/api/overview.md",
	}
	titles := map[string]string{
		"index.md":         "Welcome",
		"guides/deploy.md": "Deploying",
	}

	tree := BuildTree(paths, titles)

	if tree.Name != "docs" || !tree.IsDir {
		t.Fatalf("root = %q (dir=%v), want docs dir", tree.Name, tree.IsDir)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(tree.Children))
	}

	// Directories first, then files.
	want := []string{"guides", "reference", "index.md"}
	for i, name := range want {
		if tree.Children[i].Name != name {
			t.Errorf("child %d = %q, want %q", i, tree.Children[i].Name, name)
		}
	}

	guides := tree.Children[0]
	if guides.Title != "Guides" {
		t.Errorf("guides title = %q, want Guides", guides.Title)
	}
	if len(guides.Children) != 2 || guides.Children[0].Name != "deploy.md" {
		t.Fatalf("guides children unexpected: %+v", guides.Children)
	}
	if guides.Children[0].Title != "Deploying" {
		t.Errorf("deploy title = %q, want Deploying", guides.Children[0].Title)
	}
	if guides.Children[1].Path != "guides/getting-started.md" {
		t.Errorf("path = %q", guides.Children[1].Path)
	}

	api := tree.Children[1].Children[0]
	if !api.IsDir || api.Path != "reference/api" {
		t.Errorf("api node = %+v, want dir reference/api", api)
	}
}

func TestToHTML(t *testing.T) {
	tree := BuildTree([]string{"index.md", "guides/deploy.md", "guides/a&b.md"}, map[string]string{
		"guides/deploy.md": "Deploying <fast>",
	})

	out := tree.ToHTML("guides/deploy.md", "../")

	if !strings.Contains(out, `<li class="dir expanded">`) {
		t.Error("directory of the active page should be expanded")
	}
	if !strings.Contains(out, `<a href="../guides/deploy.html" class="active">Deploying &lt;fast&gt;</a>`) {
		t.Errorf("active link missing or unescaped:\n%s", out)
	}
	if !strings.Contains(out, `href="../guides/a&amp;b.html"`) {
		t.Errorf("href not escaped:\n%s", out)
	}
	if !strings.Contains(out, `<a href="../index.html">index</a>`) {
		t.Errorf("untitled page should fall back to its file name:\n%s", out)
	}

	out = tree.ToHTML("index.md", "")
	if strings.Contains(out, "expanded") {
		t.Error("no directory should be expanded for a root page")
	}
}

func TestPageHTMLPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"index.md", "index.html"},
		{"guides/deploy.markdown", "guides/deploy.html"},
		{"notes.txt", "notes.txt"},
		{"v1.2/readme.md", "v1.2/readme.html"},
	}
	for _, tt := range tests {
		if got := pageHTMLPath(tt.in); got != tt.want {
			t.Errorf("pageHTMLPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDirName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"getting-started", "Getting Started"},
		{"api_reference", "Api Reference"},
		{"guides", "Guides"},
		{"--", ""},
	}
	for _, tt := range tests {
		if got := formatDirName(tt.in); got != tt.want {
			t.Errorf("formatDirName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractTitle(t *testing.T) {
	if got := extractTitle("intro\n\n# Deploying Services\n\n## Steps\n", "guides/deploy.md"); got != "Deploying Services" {
		t.Errorf("got %q, want Deploying Services", got)
	}
	if got := extractTitle("## Only a subheading\n", "guides/deploy.md"); got != "deploy" {
		t.Errorf("fallback got %q, want deploy", got)
	}
}

func TestRewriteMDLinks(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`<a href="deploy.md">`, `<a href="deploy.html">`},
		{`<a href="../guides/setup.markdown#install">`, `<a href="../guides/setup.html#install">`},
		{`<a href="https://example.com/readme.md">`, `<a href="https://example.com/readme.md">`},
		{`<a href="image.png">`, `<a href="image.png">`},
	}
	for _, tt := range tests {
		if got := rewriteMDLinks(tt.in); got != tt.want {
			t.Errorf("rewriteMDLinks(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGenerate(t *testing.T) {
	docs := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")

	writeDoc(t, docs, "index.md", "# Welcome\n\nSee the [deploy guide](guides/deploy.md).\n")
	writeDoc(t, docs, "guides/deploy.md", "# Deploying\n\nPush the container to kubernetes.\n\n```\ndocker run\n```\n")
	writeDoc(t, docs, "notes.txt", "not a page")

	renderer := highlight.NewRenderer(terms.NewIndex("container", "kubernetes", "docker"), highlight.Options{
		AutoHighlight: true,
		MinLength:     3,
	})
	gen := NewSiteGenerator(docs, out, "Handbook", renderer)
	gen.LiveURL = "ws://localhost:8080/overlay/ws"

	n, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 2 {
		t.Errorf("pages = %d, want 2", n)
	}

	for _, f := range []string{"style.css", "overlay.js", "index.html", "guides/deploy.html"} {
		if _, err := os.Stat(filepath.Join(out, f)); err != nil {
			t.Errorf("expected %s: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "notes.txt")); !os.IsNotExist(err) {
		t.Error("non-markdown files should not be copied")
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	page := string(index)
	if !strings.Contains(page, `<title>Welcome | Handbook</title>`) {
		t.Error("index title missing")
	}
	if !strings.Contains(page, `href="guides/deploy.html"`) {
		t.Error("markdown link should be rewritten to the generated page")
	}
	if !strings.Contains(page, `window.TERMLENS = {liveURL: "ws:`) || !strings.Contains(page, "localhost:8080") {
		t.Errorf("live URL not embedded:\n%s", page)
	}

	deploy, err := os.ReadFile(filepath.Join(out, "guides", "deploy.html"))
	if err != nil {
		t.Fatal(err)
	}
	page = string(deploy)
	if !strings.Contains(page, `data-term="container"`) || !strings.Contains(page, `data-term="kubernetes"`) {
		t.Error("known terms should be marked")
	}
	if strings.Contains(page, `data-term="docker"`) {
		t.Error("code blocks should not be marked")
	}
	if !strings.Contains(page, `href="../style.css"`) || !strings.Contains(page, `src="../overlay.js"`) {
		t.Error("nested page should reference assets relative to the site root")
	}
	if !strings.Contains(page, `class="active">Deploying</a>`) {
		t.Error("sidebar should mark the current page")
	}
}

func TestGenerateEmptyDocs(t *testing.T) {
	gen := NewSiteGenerator(t.TempDir(), t.TempDir(), "Empty", highlight.NewRenderer(terms.NewIndex(), highlight.Options{}))
	if _, err := gen.Generate(); err == nil {
		t.Error("expected error for a docs dir with no markdown")
	}
}
