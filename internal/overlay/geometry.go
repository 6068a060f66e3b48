package overlay

// Rect is a viewport-relative rectangle in pixels (or terminal cells).
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Size is the measured size of the overlay surface.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is the visible area the overlay must stay inside.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is the overlay's top-left corner.
type Point struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Place computes where an overlay of the given size goes relative to
// anchor. The preferred side is kept unless it lacks room and the other
// side has it. Horizontally the overlay is centered on the anchor and
// clamped to stay margin away from both viewport edges; the left edge
// wins when the viewport is too narrow for both.
func Place(anchor Rect, size Size, vp Viewport, offset, margin float64, preferred Placement) (Point, Placement) {
	need := size.Height + offset
	spaceAbove := anchor.Top
	spaceBelow := vp.Height - anchor.Bottom()

	placement := preferred
	switch preferred {
	case PlaceBelow:
		if spaceBelow < need && spaceAbove >= need {
			placement = PlaceAbove
		}
	default:
		placement = PlaceAbove
		if spaceAbove < need && spaceBelow >= need {
			placement = PlaceBelow
		}
	}

	var p Point
	if placement == PlaceAbove {
		p.Top = anchor.Top - size.Height - offset
	} else {
		p.Top = anchor.Bottom() + offset
	}

	p.Left = anchor.Left + anchor.Width/2 - size.Width/2
	if maxLeft := vp.Width - margin - size.Width; p.Left > maxLeft {
		p.Left = maxLeft
	}
	if p.Left < margin {
		p.Left = margin
	}
	return p, placement
}
