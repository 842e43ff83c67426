package client

import (
	"github.com/go-gl/mathgl/mgl64"

	"rampart/pkg/geom"
)

// Camera maps world coordinates to viewport pixels. The view is a flat
// pan + uniform zoom, so the whole transform is an origin and a scale.
type Camera struct {
	origin mgl64.Vec2 // world coordinate sitting at the viewport's top-left
	zoom   float64
}

func NewCamera() *Camera {
	return &Camera{zoom: 1}
}

func (c *Camera) Zoom() float64 { return c.zoom }

// SetZoom clamps into a sane range so the view can't invert or vanish.
func (c *Camera) SetZoom(z float64) {
	if z < 0.25 {
		z = 0.25
	}
	if z > 4 {
		z = 4
	}
	c.zoom = z
}

// Pan shifts the view by a delta in world units.
func (c *Camera) Pan(dx, dy float64) {
	c.origin = c.origin.Add(mgl64.Vec2{dx, dy})
}

func (c *Camera) WorldToScreen(p geom.Point) geom.Point {
	v := mgl64.Vec2{p.X, p.Y}.Sub(c.origin).Mul(c.zoom)
	return geom.Point{X: v.X(), Y: v.Y()}
}

func (c *Camera) ScreenToWorld(p geom.Point) geom.Point {
	v := mgl64.Vec2{p.X, p.Y}.Mul(1 / c.zoom).Add(c.origin)
	return geom.Point{X: v.X(), Y: v.Y()}
}
