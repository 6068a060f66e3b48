package terms

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Default admissibility bounds.
const (
	DefaultMinLength    = 2
	DefaultMaxLength    = 50
	DefaultMinWordChars = 3
)

// Rejection reasons returned by Admit. Callers treat all of them the same
// way (ignore the interaction); the distinct values exist for logging.
var (
	ErrEmpty    = errors.New("empty candidate")
	ErrTooShort = errors.New("candidate too short")
	ErrTooLong  = errors.New("candidate too long")
	ErrTooWordy = errors.New("candidate has too many words")
)

// Admit checks whether a user-selected string is an acceptable term
// candidate and returns it trimmed. maxLen <= 0 selects DefaultMaxLength.
func Admit(candidate string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	term := strings.TrimSpace(candidate)
	if term == "" {
		return "", ErrEmpty
	}
	n := utf8.RuneCountInString(term)
	if n < DefaultMinLength {
		return "", ErrTooShort
	}
	if n > maxLen {
		return "", ErrTooLong
	}
	if len(strings.Fields(term)) > MaxWords {
		return "", ErrTooWordy
	}
	return term, nil
}
