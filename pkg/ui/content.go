package ui

import (
	"rampart/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Content is what a floating element renders. The element owns position,
// visibility and z-order; content is treated as opaque and only asked for
// its size and to draw itself at the spot the element computed.
//
// A Size of (0, 0) means "not laid out yet" and makes the element defer
// anchor-dependent placement until the content is measurable.
type Content interface {
	Size() (w, h float64)
	Draw(screen *ebiten.Image, x, y float64)
}

// InteractiveContent is content that also wants pointer input. The origin
// is the element's current top-left in viewport pixels so widgets can
// hit-test in screen coordinates. Returning true consumes the input for
// this frame.
type InteractiveContent interface {
	Content
	HandlePointer(p PointerState, origin geom.Point) bool
}

// PointerState is one frame's worth of pointer input (mouse or primary
// touch). The manager normally polls Ebiten for it; tests inject their
// own.
type PointerState struct {
	X, Y        float64
	Pressed     bool
	JustPressed bool
}

// Surface is the rendering surface the floating layer sits on. Bounds is
// re-read every frame, so a host that resizes only has to report the new
// rectangle (and call UpdateAllPositions so panels don't lag a frame
// behind).
type Surface interface {
	Bounds() geom.Rect
}

// Projector converts world coordinates to viewport pixels. It is the only
// piece of camera behavior the floating layer uses.
type Projector interface {
	WorldToScreen(p geom.Point) geom.Point
}

// Anchorable is a target that exposes a screen-space rectangle to anchor
// against, the way a panel anchors to another panel or to a HUD slot. The
// rect is re-read every frame so the anchor tracks moves and resizes
// automatically.
type Anchorable interface {
	Bounds() geom.Rect
}

// anchorPointOn returns the point on r named by a: its edges' midpoints,
// corners, or center.
func anchorPointOn(r geom.Rect, a geom.Anchor) geom.Point {
	switch a {
	case geom.AnchorTop:
		return geom.Point{X: r.X + r.W/2, Y: r.Y}
	case geom.AnchorBottom:
		return geom.Point{X: r.X + r.W/2, Y: r.Y + r.H}
	case geom.AnchorLeft:
		return geom.Point{X: r.X, Y: r.Y + r.H/2}
	case geom.AnchorRight:
		return geom.Point{X: r.X + r.W, Y: r.Y + r.H/2}
	case geom.AnchorTopLeft:
		return geom.Point{X: r.X, Y: r.Y}
	case geom.AnchorTopRight:
		return geom.Point{X: r.X + r.W, Y: r.Y}
	case geom.AnchorBottomLeft:
		return geom.Point{X: r.X, Y: r.Y + r.H}
	case geom.AnchorBottomRight:
		return geom.Point{X: r.X + r.W, Y: r.Y + r.H}
	default:
		return geom.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
	}
}

func readEbitenPointer() PointerState {
	// Touch takes priority so the same drag code serves both input kinds.
	touches := ebiten.AppendTouchIDs(nil)
	if len(touches) > 0 {
		x, y := ebiten.TouchPosition(touches[0])
		return PointerState{
			X:           float64(x),
			Y:           float64(y),
			Pressed:     true,
			JustPressed: len(inpututil.AppendJustPressedTouchIDs(nil)) > 0,
		}
	}
	x, y := ebiten.CursorPosition()
	return PointerState{
		X:           float64(x),
		Y:           float64(y),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}
