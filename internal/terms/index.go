// Package terms holds the vocabulary of known technical terms used for
// passive highlighting, plus the admissibility rules applied to
// user-selected candidates.
package terms

import (
	"sort"
	"strings"
	"sync"
)

// MaxWords is the largest number of whitespace-separated words a term
// may contain.
const MaxWords = 3

// Canonical returns the cache/registry key for a term: trimmed and
// lower-cased. Inner whitespace runs collapse to a single space so
// "pull  request" and "Pull request" share a key.
func Canonical(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// Index is a set of canonical terms. It is safe for concurrent use so a
// file watcher can replace its contents while pages are being rendered.
type Index struct {
	mu       sync.RWMutex
	terms    map[string]struct{}
	maxWords int
}

// NewIndex builds an index from the given terms. Blank entries and
// entries longer than MaxWords words are dropped.
func NewIndex(list ...string) *Index {
	idx := &Index{terms: make(map[string]struct{}, len(list))}
	for _, t := range list {
		idx.add(t)
	}
	return idx
}

func (i *Index) add(term string) bool {
	key := Canonical(term)
	if key == "" {
		return false
	}
	words := strings.Count(key, " ") + 1
	if words > MaxWords {
		return false
	}
	i.terms[key] = struct{}{}
	if words > i.maxWords {
		i.maxWords = words
	}
	return true
}

// Add inserts a term and reports whether it was accepted.
func (i *Index) Add(term string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.add(term)
}

// Contains reports whether the canonical form of term is indexed.
func (i *Index) Contains(term string) bool {
	key := Canonical(term)
	i.mu.RLock()
	_, ok := i.terms[key]
	i.mu.RUnlock()
	return ok
}

// Len returns the number of indexed terms.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.terms)
}

// MaxWords returns the word count of the longest indexed term.
func (i *Index) MaxWords() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.maxWords
}

// Terms returns the indexed terms in sorted order.
func (i *Index) Terms() []string {
	i.mu.RLock()
	out := make([]string, 0, len(i.terms))
	for t := range i.terms {
		out = append(out, t)
	}
	i.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Replace swaps the index contents for the given terms.
func (i *Index) Replace(list []string) {
	next := NewIndex(list...)
	i.mu.Lock()
	i.terms = next.terms
	i.maxWords = next.maxWords
	i.mu.Unlock()
}

// defaultTerms is the built-in vocabulary.
var defaultTerms = []string{
	"api", "rest", "json", "http", "url", "html", "css", "javascript",
	"python", "database", "sql", "server", "client", "backend", "frontend",
	"framework", "library", "function", "variable", "algorithm", "data structure",
	"cloud", "hosting", "deployment", "container", "docker", "kubernetes",
	"microservice", "authentication", "authorization", "encryption", "api key",
	"endpoint", "request", "response", "status code", "header", "payload",
	"git", "repository", "commit", "branch", "merge", "pull request",
	"compiler", "interpreter", "runtime", "debugging", "testing", "unit test",
	"integration test", "continuous integration", "continuous deployment",
	"agile", "scrum", "waterfall", "sprint", "backlog", "user story",
	"bandwidth", "latency", "throughput", "cache", "memory", "cpu", "gpu",
	"thread", "process", "asynchronous", "synchronous", "concurrency",
	"ajax", "xml", "yaml", "markdown", "regex", "expression", "statement",
}

// Default returns an index seeded with the built-in vocabulary.
func Default() *Index {
	return NewIndex(defaultTerms...)
}
