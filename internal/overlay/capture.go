package overlay

import "github.com/ziadkadry99/termlens/internal/terms"

// Selection is the page's active text selection.
type Selection struct {
	Text      string
	Rect      Rect
	Collapsed bool
}

// SelectionReader returns the current selection on demand.
type SelectionReader interface {
	Selection() Selection
}

// SelectionFunc adapts a function to SelectionReader.
type SelectionFunc func() Selection

// Selection implements SelectionReader.
func (f SelectionFunc) Selection() Selection { return f() }

// accept makes term the current term and resolves it in one loop step.
func (s *Session) accept(term string, anchor Rect, from origin) {
	s.current = term
	s.currentKey = terms.Canonical(term)
	s.anchor = &anchor
	s.origin = from
	s.resolve(term)
}

// PointerUp reports a pointer release. After the selection delay the
// session reads the selection; further releases restart the delay.
func (s *Session) PointerUp() {
	s.post(func() {
		s.arm(&s.selectDelay, s.opts.SelectionDelay, func() {
			if s.selection == nil {
				return
			}
			s.selectText(s.selection.Selection())
		})
	})
}

// Select offers a selection directly, skipping the pointer-up delay.
func (s *Session) Select(sel Selection) {
	s.post(func() { s.selectText(sel) })
}

func (s *Session) selectText(sel Selection) {
	if sel.Collapsed {
		return
	}
	term, err := terms.Admit(sel.Text, s.opts.MaxSelectionLength)
	if err != nil {
		s.logger.Debug("selection ignored", "reason", err)
		return
	}
	s.accept(term, sel.Rect, originSelection)
}

// HoverEnter reports the pointer entering a marker with the given text.
// With a positive HoverDelay the marker is accepted only once the pointer
// has rested on it that long; leaving or entering another marker first
// restarts the wait.
func (s *Session) HoverEnter(text string, rect Rect) {
	s.post(func() {
		s.disarm(&s.hoverGrace)
		s.disarm(&s.hoverDelay)
		term, err := terms.Admit(text, s.opts.MaxSelectionLength)
		if err != nil {
			return
		}
		if s.view.State != StateHidden && terms.Canonical(term) == s.currentKey {
			// Same marker again: keep the content, follow the marker.
			s.origin = originHover
			if s.anchor == nil || *s.anchor != rect {
				s.anchor = &rect
				s.place()
			}
			return
		}
		if s.opts.HoverDelay <= 0 {
			s.accept(term, rect, originHover)
			return
		}
		s.arm(&s.hoverDelay, s.opts.HoverDelay, func() {
			s.accept(term, rect, originHover)
		})
	})
}

// HoverLeave reports the pointer leaving a marker. The overlay hides
// after the grace window unless the pointer reaches the overlay or
// another marker first.
func (s *Session) HoverLeave() {
	s.post(func() {
		s.disarm(&s.hoverDelay)
		if s.view.State == StateHidden {
			return
		}
		s.arm(&s.hoverGrace, s.opts.HoverGrace, func() {
			s.logger.Debug("hover grace expired", "term", s.currentKey)
			s.dismiss()
		})
	})
}

// OverlayEnter reports the pointer entering the overlay surface.
func (s *Session) OverlayEnter() {
	s.post(func() { s.disarm(&s.hoverGrace) })
}

// OverlayLeave reports the pointer leaving the overlay surface. Only
// hover-opened overlays start the grace hide.
func (s *Session) OverlayLeave() {
	s.post(func() {
		if s.origin != originHover || s.view.State == StateHidden {
			return
		}
		s.arm(&s.hoverGrace, s.opts.HoverGrace, s.dismiss)
	})
}

// PointerDown reports a press; a press outside the overlay dismisses it.
func (s *Session) PointerDown(insideOverlay bool) {
	s.post(func() {
		if !insideOverlay {
			s.dismiss()
		}
	})
}

// Hide dismisses the overlay.
func (s *Session) Hide() {
	s.post(s.dismiss)
}

// Scroll moves the anchor by the negated scroll delta and repositions.
func (s *Session) Scroll(dx, dy float64) {
	s.post(func() {
		if s.anchor != nil {
			moved := s.anchor.Translate(-dx, -dy)
			s.anchor = &moved
		}
		s.reposition()
	})
}

// Reanchor replaces the anchor with one the host re-measured. A nil rect
// means the anchor is gone, which hides a visible overlay.
func (s *Session) Reanchor(rect *Rect) {
	s.post(func() {
		if rect == nil {
			s.anchor = nil
		} else {
			r := *rect
			s.anchor = &r
		}
		s.reposition()
	})
}

// Resize updates the viewport and repositions.
func (s *Session) Resize(vp Viewport) {
	s.post(func() {
		s.viewport = vp
		s.reposition()
	})
}
