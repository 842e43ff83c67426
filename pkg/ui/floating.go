package ui

import (
	"reflect"

	"rampart/pkg/config"
	"rampart/pkg/geom"

	log "github.com/sirupsen/logrus"
)

// Kind buckets floating elements for default z-ordering.
type Kind int

const (
	KindHealthBar Kind = iota
	KindTooltip
	KindPopup
	KindDialog
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindHealthBar:
		return "healthbar"
	case KindTooltip:
		return "tooltip"
	case KindPopup:
		return "popup"
	case KindDialog:
		return "dialog"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

func (k Kind) defaultZ() int {
	switch k {
	case KindHealthBar:
		return 100
	case KindCustom:
		return 150
	case KindTooltip:
		return 200
	case KindPopup:
		return 300
	case KindDialog:
		return 400
	}
	return 150
}

// Options configures a floating element. The zero value is usable:
// centered anchor, no offset, snap positioning (no smoothing), no
// auto-hide, transient (destroyed by the bulk-disable helpers), kind
// default z, world-space target, not draggable, no persistence.
type Options struct {
	// Offset is a pixel delta applied on top of the anchor math.
	Offset geom.Point
	// Anchor names which point of the element's box lands on the target.
	Anchor geom.Anchor
	// Smoothing in [0,1]: 0 snaps, values toward 1 lag further behind.
	// Applied once per frame tick, not time-normalized.
	Smoothing float64
	// AutoHide hides world-tracked elements whose projected point leaves
	// the surface expanded by the offscreen margin.
	AutoHide bool
	// Persistent elements survive DisableAll/DisableAllExcept as hidden;
	// transient ones are destroyed by those helpers instead.
	Persistent bool
	// ZIndex overrides the kind's default z bucket when non-zero.
	ZIndex int
	// ScreenSpace marks the target's coordinates as viewport pixels,
	// skipping camera projection.
	ScreenSpace bool
	// Draggable lets the user reposition the element with the pointer.
	Draggable bool
	// DragHandle restricts dragging to a sub-rect of the content, given
	// its current size. Returning false means "no handle yet"; if one
	// never shows up dragging just stays off (logged once). Nil means the
	// whole box drags.
	DragHandle func(w, h float64) (geom.Rect, bool)
	// PersistPosition saves the position after every drag and restores it
	// on the next enable.
	PersistPosition bool
	// StorageKey overrides the default position key ("floating-ui-position-<id>").
	StorageKey string
}

type targetMode int

const (
	targetNone targetMode = iota
	targetPoint      // resolved accessor, world or screen space
	targetAnchorRect // tracks another UI rect
)

// FloatingElement owns one piece of floating UI: its content, its
// position state machine, and whatever timers and listeners it picked up
// along the way. Elements are created by the manager, never directly.
type FloatingElement struct {
	id   string
	kind Kind
	opts Options
	mgr  *Manager

	content Content

	mode       targetMode
	resolvePos func() geom.Point
	anchorRef  Anchorable

	currentPos geom.Point
	targetPos  geom.Point

	enabled     bool
	destroyed   bool
	suppressed  bool // offscreen auto-hide froze this element
	needsLayout bool // enabled before content was measurable

	// userPositioned means a drag (or a restored stored position) owns the
	// placement; automatic tracking must not override it while there is no
	// live target.
	userPositioned bool

	drag dragState

	ttl       float64 // seconds until auto-removal; <0 means never
	intervals []*interval
	disposers []func()
}

type interval struct {
	every float64 // seconds
	acc   float64
	fn    func()
}

func newFloatingElement(id string, kind Kind, opts Options, mgr *Manager) *FloatingElement {
	if opts.Smoothing < 0 || opts.Smoothing >= 1 {
		if opts.Smoothing != 0 {
			log.Warnf("floating %q: smoothing %v out of [0,1), snapping instead", id, opts.Smoothing)
		}
		opts.Smoothing = 0
	}
	if opts.StorageKey == "" {
		opts.StorageKey = config.PositionKeyPrefix + id
	}
	return &FloatingElement{
		id:   id,
		kind: kind,
		opts: opts,
		mgr:  mgr,
		ttl:  -1,
	}
}

func (e *FloatingElement) ID() string     { return e.id }
func (e *FloatingElement) Kind() Kind     { return e.kind }
func (e *FloatingElement) Enabled() bool  { return e.enabled }
func (e *FloatingElement) Dragging() bool { return e.drag.active }

// Position returns the last rendered top-left in viewport pixels.
func (e *FloatingElement) Position() geom.Point { return e.currentPos }

func (e *FloatingElement) z() int {
	if e.opts.ZIndex != 0 {
		return e.opts.ZIndex
	}
	return e.kind.defaultZ()
}

// Bounds is the element's current box in viewport pixels.
func (e *FloatingElement) Bounds() geom.Rect {
	var w, h float64
	if e.content != nil {
		w, h = e.content.Size()
	}
	return geom.Rect{X: e.currentPos.X, Y: e.currentPos.Y, W: w, H: h}
}

// SetContent swaps what the element renders. Position state is untouched.
func (e *FloatingElement) SetContent(c Content) {
	e.content = c
}

// SetTarget switches what the element tracks. The target's shape is
// resolved once, here, into a plain accessor: a geom.Point (fixed point),
// anything with exported float64 X/Y fields, an exported Position
// geom.Point field, a GetPosition() accessor, or an Anchorable UI rect.
// An unrecognizable target logs a warning and pins the element to the
// origin rather than failing.
func (e *FloatingElement) SetTarget(target any, offset *geom.Point) {
	if offset != nil {
		e.opts.Offset = *offset
	}
	e.anchorRef = nil
	e.resolvePos = nil

	if target == nil {
		e.mode = targetNone
		return
	}
	if a, ok := target.(Anchorable); ok {
		e.mode = targetAnchorRect
		e.anchorRef = a
		return
	}
	accessor, ok := resolvePositionAccessor(target)
	if !ok {
		log.Warnf("floating %q: target %T has no recognizable position, using origin", e.id, target)
		accessor = func() geom.Point { return geom.Point{} }
	}
	e.mode = targetPoint
	e.resolvePos = accessor
	// A live target takes placement back from any earlier drag.
	e.userPositioned = false
}

// resolvePositionAccessor duck-types the target the way the entity
// contract allows: X/Y fields first, then a Position record, then a
// GetPosition method. Pointer targets stay live (the closure re-reads the
// fields each frame); value targets are snapshots.
func resolvePositionAccessor(target any) (func() geom.Point, bool) {
	switch t := target.(type) {
	case geom.Point:
		return func() geom.Point { return t }, true
	case *geom.Point:
		return func() geom.Point { return *t }, true
	}

	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		fx := v.FieldByName("X")
		fy := v.FieldByName("Y")
		if fx.IsValid() && fy.IsValid() && fx.Kind() == reflect.Float64 && fy.Kind() == reflect.Float64 {
			return func() geom.Point { return geom.Point{X: fx.Float(), Y: fy.Float()} }, true
		}
		if fp := v.FieldByName("Position"); fp.IsValid() && fp.Type() == reflect.TypeOf(geom.Point{}) {
			return func() geom.Point { return fp.Interface().(geom.Point) }, true
		}
	}
	if g, ok := target.(interface{ GetPosition() geom.Point }); ok {
		return func() geom.Point { return g.GetPosition() }, true
	}
	return nil, false
}

// Enable registers the element with the manager's active set and forces
// one immediate placement so it doesn't visibly fly in from wherever it
// last was. Enabling twice is a no-op.
func (e *FloatingElement) Enable() {
	if e.destroyed || e.enabled {
		return
	}
	e.enabled = true
	e.mgr.activate(e)

	// A persisted position wins over automatic placement when there is no
	// live target to track.
	if e.opts.PersistPosition && e.mode == targetNone && !e.userPositioned {
		if p, ok := e.mgr.positions.Load(e.opts.StorageKey); ok {
			clamped := geom.ClampToViewport(p, e.size(), e.mgr.surface.Bounds(), config.ClampPadding)
			if clamped != p {
				// Self-heal the stored value after a resolution change.
				e.mgr.positions.Save(e.opts.StorageKey, clamped)
			}
			e.currentPos = clamped
			e.targetPos = clamped
			e.userPositioned = true
			return
		}
	}
	e.UpdatePosition(true)
}

// Disable removes the element from the active set and hides it. The
// element keeps its state and can be enabled again.
func (e *FloatingElement) Disable() {
	if e.destroyed || !e.enabled {
		return
	}
	e.enabled = false
	e.drag.active = false
	e.mgr.deactivate(e)
}

func (e *FloatingElement) Toggle() {
	if e.enabled {
		e.Disable()
	} else {
		e.Enable()
	}
}

// Update advances the element by one frame. It is a no-op while disabled
// and while the user is dragging (the drag is the sole writer then).
func (e *FloatingElement) Update(dt float64) {
	if !e.enabled || e.destroyed {
		return
	}
	if e.drag.active {
		return
	}
	if e.needsLayout {
		if s := e.size(); s.W > 0 && s.H > 0 {
			e.needsLayout = false
			e.UpdatePosition(true)
			return
		}
	}
	e.UpdatePosition(false)
}

func (e *FloatingElement) size() geom.Size {
	if e.content == nil {
		return geom.Size{}
	}
	w, h := e.content.Size()
	return geom.Size{W: w, H: h}
}

// UpdatePosition runs the placement algorithm once. With immediate set
// (or smoothing 0) the rendered position snaps to the computed one;
// otherwise it chases it exponentially, one step per call.
func (e *FloatingElement) UpdatePosition(immediate bool) {
	if e.destroyed || e.content == nil {
		return
	}
	size := e.size()
	if size.W == 0 || size.H == 0 {
		// Content not laid out yet; anchor math against a zero box would
		// misplace everything, so wait for the next tick.
		e.needsLayout = true
		return
	}

	// A dragged/restored position owns placement until a live target
	// shows up again.
	if e.userPositioned && e.mode == targetNone {
		return
	}

	var base geom.Point
	switch e.mode {
	case targetNone:
		return
	case targetAnchorRect:
		// Re-read the anchor rect every call so the element tracks the
		// other panel's moves and resizes for free.
		base = anchorPointOn(e.anchorRef.Bounds(), e.opts.Anchor)
	default:
		p := e.resolvePos()
		if e.opts.ScreenSpace {
			base = p
		} else {
			surf := e.mgr.surface.Bounds()
			base = e.mgr.project(p)
			// The floating layer and the render surface may not share an
			// origin.
			base.X += surf.X
			base.Y += surf.Y

			if e.opts.AutoHide {
				if geom.IsOffscreen(base, surf, config.OffscreenMargin) {
					// Freeze rather than track while hidden, so the
					// element doesn't snap across the screen the moment
					// it comes back.
					e.suppressed = true
					return
				}
				e.suppressed = false
			}
		}
	}

	off := geom.AnchorOffset(size, e.opts.Anchor)
	e.targetPos = geom.Point{
		X: base.X + e.opts.Offset.X + off.X,
		Y: base.Y + e.opts.Offset.Y + off.Y,
	}

	if immediate || e.opts.Smoothing == 0 {
		e.currentPos = e.targetPos
		return
	}
	e.currentPos.X = geom.Lerp(e.currentPos.X, e.targetPos.X, e.opts.Smoothing)
	e.currentPos.Y = geom.Lerp(e.currentPos.Y, e.targetPos.Y, e.opts.Smoothing)
}

// ResetPosition forgets any dragged or stored position and, if a live
// target exists, recomputes from it immediately.
func (e *FloatingElement) ResetPosition() {
	e.mgr.positions.Clear(e.opts.StorageKey)
	e.userPositioned = false
	if e.mode != targetNone {
		e.UpdatePosition(true)
	}
}

// ExpireAfter schedules automatic removal once the element has been
// active for d seconds of frame time.
func (e *FloatingElement) ExpireAfter(seconds float64) {
	e.ttl = seconds
}

// AddInterval runs fn every `every` seconds of frame time while the
// element is enabled. The returned disposer stops it; Destroy stops it
// too.
func (e *FloatingElement) AddInterval(every float64, fn func()) func() {
	iv := &interval{every: every, fn: fn}
	e.intervals = append(e.intervals, iv)
	return func() {
		for i, other := range e.intervals {
			if other == iv {
				e.intervals = append(e.intervals[:i], e.intervals[i+1:]...)
				return
			}
		}
	}
}

// OnDestroy registers a cleanup hook run exactly once when the element is
// destroyed.
func (e *FloatingElement) OnDestroy(fn func()) {
	e.disposers = append(e.disposers, fn)
}

// Destroy tears the element down: disables it, runs every disposer once,
// and frees the id for reuse. Idempotent; the element accepts no further
// operations.
func (e *FloatingElement) Destroy() {
	if e.destroyed {
		return
	}
	e.Disable()
	e.destroyed = true
	e.intervals = nil

	disposers := e.disposers
	e.disposers = nil
	for _, fn := range disposers {
		fn()
	}
	e.mgr.evict(e)
}

// tickTimers advances the element's frame-driven timers. Removal via ttl
// goes through the manager so registry bookkeeping stays consistent.
func (e *FloatingElement) tickTimers(dt float64) {
	if e.ttl >= 0 {
		e.ttl -= dt
		if e.ttl <= 0 {
			e.ttl = -1
			e.mgr.Remove(e.id)
			return
		}
	}
	// Copy: an interval callback may dispose intervals.
	ivs := make([]*interval, len(e.intervals))
	copy(ivs, e.intervals)
	for _, iv := range ivs {
		iv.acc += dt
		if iv.acc >= iv.every {
			iv.acc = 0
			iv.fn()
		}
	}
}
