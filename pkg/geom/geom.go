package geom

// Point is a 2D coordinate in pixels (or world units, depending on context).
type Point struct {
	X, Y float64
}

// Size is the width/height of a UI box.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle with top-left origin.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Expand grows the rect by m on all four sides.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Anchor is a named reference point on a rectangular UI box. AnchorOffset
// aligns that point of the box onto a target coordinate.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

func (a Anchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	case AnchorTopLeft:
		return "top-left"
	case AnchorTopRight:
		return "top-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorBottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// AnchorOffset returns the delta from a target coordinate to the box's
// top-left corner so that the named anchor point of the box lands exactly
// on the target. A box with zero width or height has not been laid out
// yet; callers get {0,0} and must defer placement until it is measurable.
func AnchorOffset(s Size, a Anchor) Point {
	if s.W == 0 || s.H == 0 {
		return Point{}
	}
	switch a {
	case AnchorTop:
		return Point{X: -s.W / 2, Y: 0}
	case AnchorBottom:
		return Point{X: -s.W / 2, Y: -s.H}
	case AnchorLeft:
		return Point{X: 0, Y: -s.H / 2}
	case AnchorRight:
		return Point{X: -s.W, Y: -s.H / 2}
	case AnchorTopLeft:
		return Point{X: 0, Y: 0}
	case AnchorTopRight:
		return Point{X: -s.W, Y: 0}
	case AnchorBottomLeft:
		return Point{X: 0, Y: -s.H}
	case AnchorBottomRight:
		return Point{X: -s.W, Y: -s.H}
	default: // AnchorCenter
		return Point{X: -s.W / 2, Y: -s.H / 2}
	}
}

// IsOffscreen reports whether p lies outside the viewport expanded by
// margin on all sides. Only world-tracked elements are hidden this way;
// user-positioned elements never are.
func IsOffscreen(p Point, viewport Rect, margin float64) bool {
	return !viewport.Expand(margin).Contains(p)
}

// ClampToViewport pulls the box positioned at p (top-left) back inside the
// viewport, keeping at least padding between every edge of the box and the
// viewport edge. A box larger than the viewport pins to the top-left
// padding.
func ClampToViewport(p Point, s Size, viewport Rect, padding float64) Point {
	maxX := viewport.X + viewport.W - s.W - padding
	maxY := viewport.Y + viewport.H - s.H - padding
	if p.X > maxX {
		p.X = maxX
	}
	if p.Y > maxY {
		p.Y = maxY
	}
	if p.X < viewport.X+padding {
		p.X = viewport.X + padding
	}
	if p.Y < viewport.Y+padding {
		p.Y = viewport.Y + padding
	}
	return p
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
