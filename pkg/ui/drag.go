package ui

import (
	"rampart/pkg/config"
	"rampart/pkg/geom"

	log "github.com/sirupsen/logrus"
)

type dragState struct {
	active bool
	warned bool // missing-handle warning already logged

	startPointer geom.Point
	startPos     geom.Point
}

// handleRect returns the draggable region in viewport pixels: the whole
// box by default, or whatever sub-rect the DragHandle resolver names. A
// handle that can't be resolved disables dragging for now (logged once);
// it is re-checked on later presses in case the content shows up late.
func (e *FloatingElement) handleRect() (geom.Rect, bool) {
	box := e.Bounds()
	if e.opts.DragHandle == nil {
		return box, true
	}
	rel, ok := e.opts.DragHandle(box.W, box.H)
	if !ok {
		if !e.drag.warned {
			e.drag.warned = true
			log.Warnf("floating %q: drag handle not resolvable, dragging disabled", e.id)
		}
		return geom.Rect{}, false
	}
	return geom.Rect{X: box.X + rel.X, Y: box.Y + rel.Y, W: rel.W, H: rel.H}, true
}

// handleDrag advances the drag gesture by one frame of pointer state and
// reports whether the pointer was consumed. While a drag is active this
// is the only code allowed to move the element.
func (e *FloatingElement) handleDrag(p PointerState) bool {
	if !e.opts.Draggable || e.destroyed || !e.enabled {
		return false
	}

	if !e.drag.active {
		if !p.JustPressed {
			return false
		}
		handle, ok := e.handleRect()
		if !ok || !handle.Contains(geom.Point{X: p.X, Y: p.Y}) {
			return false
		}
		e.drag.active = true
		e.drag.startPointer = geom.Point{X: p.X, Y: p.Y}
		e.drag.startPos = e.currentPos
		return true
	}

	if p.Pressed {
		// Raw pointer delta, no smoothing.
		e.currentPos = geom.Point{
			X: e.drag.startPos.X + p.X - e.drag.startPointer.X,
			Y: e.drag.startPos.Y + p.Y - e.drag.startPointer.Y,
		}
		e.targetPos = e.currentPos
		return true
	}

	// Release: pull the box back inside the surface, remember that the
	// user owns the position now, and persist it if asked to.
	e.drag.active = false
	e.currentPos = geom.ClampToViewport(e.currentPos, e.size(), e.mgr.surface.Bounds(), config.DragClampInset)
	e.targetPos = e.currentPos
	e.userPositioned = true
	if e.opts.PersistPosition {
		e.mgr.positions.Save(e.opts.StorageKey, e.currentPos)
	}
	return true
}
