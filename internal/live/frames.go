package live

import (
	"math"
	"unicode/utf8"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

// Inbound frame types sent by the page.
const (
	FramePointerUp    = "pointer_up"
	FrameSelection    = "selection"
	FrameHoverEnter   = "hover_enter"
	FrameHoverLeave   = "hover_leave"
	FrameOverlayEnter = "overlay_enter"
	FrameOverlayLeave = "overlay_leave"
	FramePointerDown  = "pointer_down"
	FrameScroll       = "scroll"
	FrameResize       = "resize"
	FrameReanchor     = "reanchor"
	FrameHide         = "hide"
)

// Outbound frame types.
const (
	FrameHello = "hello"
	FrameView  = "view"
	FrameError = "error"
)

// Inbound is a page event. Which fields are set depends on Type.
type Inbound struct {
	Type      string            `json:"type"`
	Text      string            `json:"text,omitempty"`
	Rect      *overlay.Rect     `json:"rect,omitempty"`
	Collapsed bool              `json:"collapsed,omitempty"`
	Inside    bool              `json:"inside,omitempty"`
	DX        float64           `json:"dx,omitempty"`
	DY        float64           `json:"dy,omitempty"`
	Viewport  *overlay.Viewport `json:"viewport,omitempty"`
}

// Outbound is a frame sent to the page.
type Outbound struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id,omitempty"`
	Options   *HelloOptions `json:"options,omitempty"`
	View      *overlay.View `json:"view,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// HelloOptions is the page-facing subset of overlay.Options.
type HelloOptions struct {
	APIEndpoint        string  `json:"api_endpoint"`
	ContainerSelector  string  `json:"container_selector"`
	ContentSelector    string  `json:"content_selector"`
	MaxSelectionLength int     `json:"max_selection_length"`
	MinTermLength      int     `json:"min_term_length"`
	AutoHighlight      bool    `json:"auto_highlight"`
	TooltipOffset      float64 `json:"tooltip_offset"`
	Margin             float64 `json:"margin"`
	PreferredPosition  string  `json:"preferred_position"`
	MaxWidth           float64 `json:"max_width"`
	SelectionDelayMS   int64   `json:"selection_delay_ms"`
	HoverDelayMS       int64   `json:"hover_delay_ms"`
	HoverGraceMS       int64   `json:"hover_grace_ms"`
	AutoHideMS         int64   `json:"auto_hide_ms"`
}

func helloOptions(o overlay.Options) *HelloOptions {
	return &HelloOptions{
		APIEndpoint:        o.APIEndpoint,
		ContainerSelector:  o.ContainerSelector,
		ContentSelector:    o.ContentSelector,
		MaxSelectionLength: o.MaxSelectionLength,
		MinTermLength:      o.MinTermLength,
		AutoHighlight:      o.AutoHighlight,
		TooltipOffset:      o.TooltipOffset,
		Margin:             o.Margin,
		PreferredPosition:  string(o.PreferredPosition),
		MaxWidth:           maxWidth,
		SelectionDelayMS:   o.SelectionDelay.Milliseconds(),
		HoverDelayMS:       o.HoverDelay.Milliseconds(),
		HoverGraceMS:       o.HoverGrace.Milliseconds(),
		AutoHideMS:         o.AutoHide.Milliseconds(),
	}
}

// Overlay box metrics the page stylesheet is expected to use.
const (
	maxWidth   = 300
	padding    = 12
	charWidth  = 7
	lineHeight = 20
)

// estimateSize approximates the rendered overlay box for content. The page
// styles the overlay with max_width, so the estimate only needs to be
// close enough to pick a side and clamp.
func estimateSize(content string) overlay.Size {
	n := float64(utf8.RuneCountInString(content))
	inner := maxWidth - 2*padding
	textWidth := n * charWidth
	width := math.Min(maxWidth, textWidth+2*padding)
	lines := math.Max(1, math.Ceil(textWidth/float64(inner)))
	return overlay.Size{Width: width, Height: lines*lineHeight + 2*padding}
}
