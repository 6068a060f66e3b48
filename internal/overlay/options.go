package overlay

import (
	"strings"
	"time"
)

// Placement is the vertical side of the anchor the overlay sits on.
type Placement string

const (
	PlaceAbove Placement = "above"
	PlaceBelow Placement = "below"
)

// Default messages.
const (
	DefaultLoadingMessage = "Looking up an explanation..."
	DefaultFailureMessage = "Sorry, this term cannot be explained right now."
)

// DefaultSentinels are backend replies that mean "no explanation" even
// though the request succeeded.
var DefaultSentinels = []string{
	"Sorry, I couldn't explain that term right now.",
}

// Options tune capture, resolution and presentation.
type Options struct {
	// APIEndpoint is where explanation requests go. The session itself
	// only talks to an Explainer; hosts use this to build one.
	APIEndpoint string
	// ContainerSelector scopes event listening and ContentSelector scopes
	// highlighting. Both are passed through to page hosts.
	ContainerSelector string
	ContentSelector   string

	MaxSelectionLength int
	MinTermLength      int
	AutoHighlight      bool

	TooltipOffset     float64
	Margin            float64
	PreferredPosition Placement

	SelectionDelay time.Duration
	// HoverDelay is how long the pointer must rest on a marker before it
	// is accepted. Zero accepts on entry.
	HoverDelay time.Duration
	HoverGrace time.Duration
	AutoHide   time.Duration

	// CacheLimit bounds the explanation cache. Zero keeps every entry for
	// the life of the session.
	CacheLimit int

	LoadingMessage string
	FailureMessage string
	Sentinels      []string
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		APIEndpoint:        "/simplifier/explain",
		ContainerSelector:  "body",
		ContentSelector:    "main",
		MaxSelectionLength: 50,
		MinTermLength:      3,
		AutoHighlight:      true,
		TooltipOffset:      10,
		Margin:             10,
		PreferredPosition:  PlaceAbove,
		SelectionDelay:     200 * time.Millisecond,
		HoverGrace:         300 * time.Millisecond,
		AutoHide:           10 * time.Second,
		LoadingMessage:     DefaultLoadingMessage,
		FailureMessage:     DefaultFailureMessage,
		Sentinels:          DefaultSentinels,
	}
}

// normalize fills zero values from DefaultOptions.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.MaxSelectionLength <= 0 {
		o.MaxSelectionLength = d.MaxSelectionLength
	}
	if o.MinTermLength <= 0 {
		o.MinTermLength = d.MinTermLength
	}
	if o.TooltipOffset < 0 {
		o.TooltipOffset = 0
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.PreferredPosition != PlaceBelow {
		o.PreferredPosition = PlaceAbove
	}
	if o.SelectionDelay <= 0 {
		o.SelectionDelay = d.SelectionDelay
	}
	if o.HoverDelay < 0 {
		o.HoverDelay = 0
	}
	if o.HoverGrace <= 0 {
		o.HoverGrace = d.HoverGrace
	}
	if o.AutoHide <= 0 {
		o.AutoHide = d.AutoHide
	}
	if o.LoadingMessage == "" {
		o.LoadingMessage = d.LoadingMessage
	}
	if o.FailureMessage == "" {
		o.FailureMessage = d.FailureMessage
	}
	if o.Sentinels == nil {
		o.Sentinels = d.Sentinels
	}
	return o
}

// Usable reports whether explanation is non-empty and differs from every
// sentinel, ignoring case and surrounding space.
func Usable(explanation string, sentinels []string) bool {
	e := strings.TrimSpace(explanation)
	if e == "" {
		return false
	}
	for _, sentinel := range sentinels {
		if strings.EqualFold(e, strings.TrimSpace(sentinel)) {
			return false
		}
	}
	return true
}
