// Package highlight marks occurrences of known terms in rendered text.
//
// The matching core (Spans) works on plain strings so any UI tree can use
// it; Extension applies it to a goldmark document, wrapping matches in
// Marker nodes.
package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ziadkadry99/termlens/internal/terms"
)

// Span is a run of text that is either plain or a marked term.
type Span struct {
	Text   string
	Marked bool
	// Term is the canonical form of a marked span.
	Term string
}

type token struct {
	text string
	word bool
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits s into alternating word and non-word runs.
func tokenize(s string) []token {
	var toks []token
	start := 0
	inWord := false
	for i, r := range s {
		w := isWordRune(r)
		if i == 0 {
			inWord = w
			continue
		}
		if w != inWord {
			toks = append(toks, token{text: s[start:i], word: inWord})
			start = i
			inWord = w
		}
	}
	if start < len(s) {
		toks = append(toks, token{text: s[start:], word: inWord})
	}
	return toks
}

// isGap reports whether a non-word token may sit between the words of a
// multi-word term.
func isGap(s string) bool {
	return s == " " || s == "-"
}

// Spans tokenizes text on word boundaries and marks every run that equals
// an indexed term. Multi-word terms match across single-space or hyphen
// separators and the longest match wins. Words shorter than minLen runes
// are never marked on their own. Concatenating the Text of the result
// always reproduces the input.
func Spans(text string, idx *terms.Index, minLen int) []Span {
	if text == "" || idx == nil {
		return nil
	}
	if minLen <= 0 {
		minLen = terms.DefaultMinWordChars
	}
	toks := tokenize(text)
	maxWords := idx.MaxWords()

	var out []Span
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			out = append(out, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(toks); {
		if !toks[i].word {
			plain.WriteString(toks[i].text)
			i++
			continue
		}
		matched := 0
		for n := maxWords; n >= 1; n-- {
			end := i + 2*(n-1)
			if end >= len(toks) {
				continue
			}
			ok := true
			for j := i + 1; j < end; j += 2 {
				if !isGap(toks[j].text) || !toks[j+1].word {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			var phrase strings.Builder
			for j := i; j <= end; j++ {
				phrase.WriteString(toks[j].text)
			}
			candidate := phrase.String()
			if utf8.RuneCountInString(candidate) < minLen {
				continue
			}
			key := terms.Canonical(strings.ReplaceAll(candidate, "-", " "))
			if !idx.Contains(key) {
				continue
			}
			flush()
			out = append(out, Span{Text: candidate, Marked: true, Term: key})
			matched = end - i + 1
			break
		}
		if matched == 0 {
			plain.WriteString(toks[i].text)
			matched = 1
		}
		i += matched
	}
	flush()
	return out
}

// HasMarks reports whether any span is marked.
func HasMarks(spans []Span) bool {
	for _, s := range spans {
		if s.Marked {
			return true
		}
	}
	return false
}
