package client

import (
	"rampart/pkg/geom"
)

// Surface is the floating layer's view of the render target: current
// bounds plus resize fan-out. The origin stays at zero for a plain
// window; an embedded viewport would carry an offset.
type Surface struct {
	bounds    geom.Rect
	listeners []func()
}

func NewSurface(w, h float64) *Surface {
	return &Surface{bounds: geom.Rect{W: w, H: h}}
}

func (s *Surface) Bounds() geom.Rect { return s.bounds }

// OnResize registers a listener run after every bounds change.
func (s *Surface) OnResize(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Resize updates the bounds and notifies listeners. Same-size calls are
// swallowed so per-frame Layout invocations stay cheap.
func (s *Surface) Resize(w, h float64) {
	if s.bounds.W == w && s.bounds.H == h {
		return
	}
	s.bounds.W = w
	s.bounds.H = h
	for _, fn := range s.listeners {
		fn()
	}
}
