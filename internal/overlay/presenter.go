package overlay

import "fmt"

// State is the presenter state.
type State int

const (
	StateHidden State = iota
	StateLoading
	StateShown
)

func (st State) String() string {
	switch st {
	case StateLoading:
		return "loading"
	case StateShown:
		return "shown"
	default:
		return "hidden"
	}
}

// MarshalText lets views serialize the state by name.
func (st State) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}

// UnmarshalText parses a state name.
func (st *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "hidden":
		*st = StateHidden
	case "loading":
		*st = StateLoading
	case "shown":
		*st = StateShown
	default:
		return fmt.Errorf("unknown overlay state %q", b)
	}
	return nil
}

// View is what the surface should display.
type View struct {
	State     State     `json:"state"`
	Term      string    `json:"term,omitempty"`
	Content   string    `json:"content,omitempty"`
	Top       float64   `json:"top"`
	Left      float64   `json:"left"`
	Placement Placement `json:"placement,omitempty"`
}

// Surface is the host's overlay element. Both methods are called from the
// session loop.
type Surface interface {
	// Measure returns the size the overlay would have with content.
	Measure(content string) Size
	// Render displays v. A hidden view removes the overlay.
	Render(v View)
}

// show sets content, positions the overlay and restarts the auto-hide
// timer. Without an anchor the overlay is hidden instead.
func (s *Session) show(content string, st State) {
	if s.anchor == nil {
		s.dismiss()
		return
	}
	s.disarm(&s.autoHide)
	s.view.State = st
	s.view.Term = s.current
	s.view.Content = content
	s.place()
	s.arm(&s.autoHide, s.opts.AutoHide, func() {
		s.logger.Debug("overlay auto-hidden", "term", s.currentKey)
		s.dismiss()
	})
}

// place recomputes the position from the current anchor and renders.
func (s *Session) place() {
	size := s.surface.Measure(s.view.Content)
	p, placement := Place(*s.anchor, size, s.viewport, s.opts.TooltipOffset, s.opts.Margin, s.opts.PreferredPosition)
	s.view.Top = p.Top
	s.view.Left = p.Left
	s.view.Placement = placement
	s.surface.Render(s.view)
}

// reposition re-derives placement for a visible overlay.
func (s *Session) reposition() {
	if s.view.State == StateHidden {
		return
	}
	if s.anchor == nil {
		s.dismiss()
		return
	}
	s.place()
}

// dismiss hides the overlay and forgets the current term and anchor.
func (s *Session) dismiss() {
	s.disarm(&s.autoHide)
	s.disarm(&s.hoverGrace)
	s.current = ""
	s.currentKey = ""
	s.anchor = nil
	s.origin = originNone
	if s.view.State == StateHidden {
		return
	}
	s.view = View{State: StateHidden}
	s.surface.Render(s.view)
}
