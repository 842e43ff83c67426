package ui

import (
	"fmt"
	"image/color"

	"rampart/pkg/config"
	"rampart/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Convenience constructors. Everything here is built purely on the
// Create/SetTarget/Enable primitives; nothing below reaches into the
// placement algorithm.

// ShowDamageNumber pops a transient floating number over a world position
// and removes it by itself after the configured lifetime. Snap
// positioning: damage numbers must not lag the hit.
func (m *Manager) ShowDamageNumber(txt string, worldPos geom.Point, clr color.Color) *FloatingElement {
	m.seq++
	id := fmt.Sprintf("damage-%d", m.seq)
	e := m.Create(id, KindCustom, Options{
		Anchor:   geom.AnchorBottom,
		Offset:   geom.Point{Y: -8},
		AutoHide: true,
	})
	label := NewLabel(txt)
	label.Color = clr
	e.SetContent(label)
	e.SetTarget(worldPos, nil)
	e.ExpireAfter(float64(config.DamageNumberLifetimeMs) / 1000)
	e.Enable()
	return e
}

// CreateHUDBadge mounts a persistent, screen-anchored badge whose text is
// refreshed from the getter on an interval the element owns (and
// therefore clears on removal).
func (m *Manager) CreateHUDBadge(id string, screenPos geom.Point, get func() string) *FloatingElement {
	e := m.Create(id, KindCustom, Options{
		Anchor:      geom.AnchorTopLeft,
		ScreenSpace: true,
		Persistent:  true,
	})
	label := NewLabel(get())
	e.SetContent(label)
	e.SetTarget(screenPos, nil)
	e.AddInterval(float64(config.HUDRefreshMs)/1000, func() {
		label.Text = get()
	})
	e.Enable()
	return e
}

// HealthSource exposes the current and maximum health of an entity a
// health bar is bound to.
type HealthSource interface {
	Health() (current, max float64)
}

type healthBarContent struct {
	w, h float64
	frac float64
}

func (c *healthBarContent) Size() (float64, float64) { return c.w, c.h }

func (c *healthBarContent) Draw(screen *ebiten.Image, x, y float64) {
	var fill color.RGBA
	switch {
	case c.frac > 0.5:
		fill = color.RGBA{0, 200, 0, 255} // healthy
	case c.frac > 0.25:
		fill = color.RGBA{230, 180, 0, 255} // warning
	default:
		fill = color.RGBA{210, 40, 40, 255} // critical
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(c.w), float32(c.h),
		color.RGBA{50, 50, 50, 255}, true)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(c.w*c.frac), float32(c.h), fill, true)
}

// CreateHealthBar binds a world-tracking bar to an entity. The fill
// fraction refreshes on an interval rather than every frame; position
// still tracks per frame.
func (m *Manager) CreateHealthBar(id string, target any, hp HealthSource) *FloatingElement {
	e := m.Create(id, KindHealthBar, Options{
		Anchor:   geom.AnchorBottom,
		Offset:   geom.Point{Y: -6},
		AutoHide: true,
	})
	bar := &healthBarContent{w: 32, h: 5, frac: 1}
	refresh := func() {
		cur, max := hp.Health()
		if max <= 0 {
			bar.frac = 0
			return
		}
		bar.frac = cur / max
		if bar.frac < 0 {
			bar.frac = 0
		}
	}
	refresh()
	e.SetContent(bar)
	e.SetTarget(target, nil)
	e.AddInterval(float64(config.HealthBarRefreshMs)/1000, refresh)
	e.Enable()
	return e
}

// --- Dialogs ---

type DialogOptions struct {
	Title     string
	Body      Content
	Modal     bool // adds a backdrop that swallows background clicks
	Closeable bool // header close affordance
	Draggable bool // title bar drags
	OnClose   func()
}

// screenCenterTarget keeps a dialog centered across resizes.
type screenCenterTarget struct {
	surface Surface
}

func (t screenCenterTarget) GetPosition() geom.Point {
	b := t.surface.Bounds()
	return geom.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// backdropContent covers the whole surface and intercepts any press that
// the dialog above it didn't take, firing the close callback.
type backdropContent struct {
	surface Surface
	onPress func()
}

func (b *backdropContent) Size() (float64, float64) {
	r := b.surface.Bounds()
	return r.W, r.H
}

func (b *backdropContent) Draw(screen *ebiten.Image, x, y float64) {
	r := b.surface.Bounds()
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
		color.RGBA{0, 0, 0, 140}, false)
}

func (b *backdropContent) HandlePointer(p PointerState, _ geom.Point) bool {
	if p.JustPressed {
		b.onPress()
	}
	// Swallow everything: nothing behind a modal gets input.
	return p.Pressed || p.JustPressed
}

// CreateDialog mounts a centered dialog with the structured header, an
// optional modal backdrop, and a content slot. Closing — via the header
// button or a backdrop press — fires OnClose exactly once and removes
// both nodes. Removing the dialog removes the backdrop as well.
func (m *Manager) CreateDialog(id string, o DialogOptions) *FloatingElement {
	if m.Get(id) != nil {
		// Create logs the duplicate and hands back the existing instance.
		return m.Create(id, KindDialog, Options{})
	}

	opts := Options{
		Anchor:      geom.AnchorCenter,
		ScreenSpace: true,
		Persistent:  true,
	}
	if o.Draggable {
		opts.Draggable = true
		opts.DragHandle = TitleBarHandle
	}
	e := m.Create(id, KindDialog, opts)

	closed := false
	doClose := func() {
		if closed {
			return
		}
		closed = true
		if o.OnClose != nil {
			o.OnClose()
		}
		m.Remove(id)
	}

	e.SetContent(NewDialogContent(o.Title, o.Body, o.Closeable, doClose))
	e.SetTarget(screenCenterTarget{m.surface}, nil)
	// A programmatic Remove counts as closing too; the guard keeps
	// OnClose at exactly one call whichever path runs first.
	e.OnDestroy(doClose)

	if o.Modal {
		backdropID := id + "-backdrop"
		bd := m.Create(backdropID, KindCustom, Options{
			Anchor:      geom.AnchorTopLeft,
			ScreenSpace: true,
			Persistent:  true,
			ZIndex:      e.z() - 1,
		})
		bd.SetContent(&backdropContent{surface: m.surface, onPress: doClose})
		bd.SetTarget(geom.Point{}, nil)
		bd.Enable()
		e.OnDestroy(func() { m.Remove(backdropID) })
	}

	e.Enable()
	return e
}
