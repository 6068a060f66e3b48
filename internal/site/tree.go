package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// FileTree is a node in the documentation navigation tree.
type FileTree struct {
	Name  string
	Title string // Display name: the page's H1, or a formatted directory name.
	Path  string // Slash-separated path relative to the docs root.
	IsDir bool

	Children []*FileTree
}

// BuildTree constructs a FileTree from relative page paths. titles maps
// a path to its display title and may be nil.
func BuildTree(paths []string, titles map[string]string) *FileTree {
	root := &FileTree{Name: "docs", IsDir: true}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			child := current.child(part)
			if child == nil {
				child = &FileTree{Name: part, Path: strings.Join(parts[:i+1], "/")}
				if i < len(parts)-1 {
					child.IsDir = true
					child.Title = formatDirName(part)
				} else {
					child.Title = titles[p]
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}

	root.sort()
	return root
}

func (t *FileTree) child(name string) *FileTree {
	for _, c := range t.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// sort orders children directories first, then by name.
func (t *FileTree) sort() {
	sort.Slice(t.Children, func(i, j int) bool {
		a, b := t.Children[i], t.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, c := range t.Children {
		if c.IsDir {
			c.sort()
		}
	}
}

// ToHTML renders the tree as nested lists for the sidebar. basePath leads
// from the active page back to the site root.
func (t *FileTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	t.render(&b, activePath, basePath)
	return b.String()
}

func (t *FileTree) render(b *strings.Builder, activePath, basePath string) {
	if len(t.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, c := range t.Children {
		label := html.EscapeString(c.label())
		if c.IsDir {
			class := "dir"
			if strings.HasPrefix(activePath, c.Path+"/") {
				class += " expanded"
			}
			fmt.Fprintf(b, `<li class="%s"><span class="dir-toggle">%s</span>`+"\n", class, label)
			c.render(b, activePath, basePath)
			b.WriteString("</li>\n")
			continue
		}
		active := ""
		if c.Path == activePath {
			active = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
			html.EscapeString(basePath+pageHTMLPath(c.Path)), active, label)
	}
	b.WriteString("</ul>\n")
}

func (t *FileTree) label() string {
	if t.Title != "" {
		return t.Title
	}
	return strings.TrimSuffix(t.Name, path.Ext(t.Name))
}

// pageHTMLPath maps a markdown path to the page written for it.
func pageHTMLPath(p string) string {
	switch path.Ext(p) {
	case ".md", ".markdown":
		return strings.TrimSuffix(p, path.Ext(p)) + ".html"
	}
	return p
}

// formatDirName title-cases a directory slug: "getting-started" becomes
// "Getting Started".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
