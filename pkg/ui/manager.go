package ui

import (
	"image/color"
	"sort"

	"rampart/pkg/config"
	"rampart/pkg/geom"
	"rampart/pkg/storage"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
)

// Manager is the registry and shared frame loop for all floating UI.
// There is deliberately one loop per manager, not one per element: every
// panel's smoothing stays synchronized to the same frame cadence and the
// host only has to call Tick once per frame. The loop runs exactly while
// the active set is non-empty.
type Manager struct {
	surface   Surface
	projector Projector
	positions *PositionStore

	registry map[string]*FloatingElement
	active   map[string]*FloatingElement

	running bool
	seq     int

	watchers []*clickWatcher

	// ReadPointer supplies per-frame pointer state. Defaults to polling
	// Ebiten; tests swap in their own.
	ReadPointer func() PointerState
}

func NewManager(surface Surface, projector Projector, store storage.Store) *Manager {
	m := &Manager{
		surface:     surface,
		projector:   projector,
		registry:    make(map[string]*FloatingElement),
		active:      make(map[string]*FloatingElement),
		ReadPointer: readEbitenPointer,
	}
	m.positions = NewPositionStore(store, surface)
	return m
}

func (m *Manager) project(p geom.Point) geom.Point {
	if m.projector == nil {
		return p
	}
	return m.projector.WorldToScreen(p)
}

// Create registers a new floating element. A duplicate id is a soft
// failure: the existing instance is returned and a warning logged, so a
// sloppy double-open never crashes or double-mounts a panel.
func (m *Manager) Create(id string, kind Kind, opts Options) *FloatingElement {
	if existing, ok := m.registry[id]; ok {
		log.Warnf("floating manager: %q already exists, returning existing element", id)
		return existing
	}
	e := newFloatingElement(id, kind, opts, m)
	m.registry[id] = e
	return e
}

func (m *Manager) Get(id string) *FloatingElement {
	return m.registry[id]
}

// Remove destroys the element and evicts it from registry and active set.
// Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) {
	if e, ok := m.registry[id]; ok {
		e.Destroy()
	}
}

// Running reports whether the shared loop is live (active set non-empty).
func (m *Manager) Running() bool { return m.running }

// ActiveCount is the number of enabled elements.
func (m *Manager) ActiveCount() int { return len(m.active) }

func (m *Manager) activate(e *FloatingElement) {
	if _, ok := m.active[e.id]; ok {
		return
	}
	m.active[e.id] = e
	if len(m.active) == 1 {
		// 0 -> 1: the shared loop starts.
		m.running = true
	}
}

func (m *Manager) deactivate(e *FloatingElement) {
	if _, ok := m.active[e.id]; !ok {
		return
	}
	delete(m.active, e.id)
	if len(m.active) == 0 {
		// -> 0: the shared loop stops.
		m.running = false
	}
}

func (m *Manager) evict(e *FloatingElement) {
	m.deactivate(e)
	delete(m.registry, e.id)
}

// EnableAll enables every registered element.
func (m *Manager) EnableAll() {
	for _, e := range m.snapshotRegistry() {
		e.Enable()
	}
}

// DisableAll suppresses every floating panel: persistent elements hide,
// transient ones are destroyed.
func (m *Manager) DisableAll() {
	m.DisableAllExcept()
}

// DisableAllExcept suppresses everything but the given ids — the usual
// move when a modal dialog opens and only the control bar should survive.
func (m *Manager) DisableAllExcept(ids ...string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	for _, e := range m.snapshotRegistry() {
		if keep[e.id] {
			continue
		}
		if e.opts.Persistent {
			e.Disable()
		} else {
			m.Remove(e.id)
		}
	}
}

// UpdateAllPositions forces an immediate recompute of every active
// element. Hosts call it on window resizes and orientation changes so
// panels don't smooth-lag behind a viewport jump. User-positioned panels
// are re-clamped into the new bounds instead.
func (m *Manager) UpdateAllPositions() {
	bounds := m.surface.Bounds()
	for _, e := range m.snapshotActive(false) {
		if e.userPositioned && e.mode == targetNone {
			clamped := geom.ClampToViewport(e.currentPos, e.size(), bounds, config.ClampPadding)
			if clamped != e.currentPos {
				e.currentPos = clamped
				e.targetPos = clamped
				if e.opts.PersistPosition {
					m.positions.Save(e.opts.StorageKey, clamped)
				}
			}
			continue
		}
		e.UpdatePosition(true)
	}
}

// Tick advances the whole floating layer by one frame: pointer input
// (top-most element first), click-outside watchers, element timers, then
// position updates. dt is in seconds. Does nothing while no element is
// active.
func (m *Manager) Tick(dt float64) {
	if !m.running {
		return
	}
	pointer := m.ReadPointer()

	// Capture phase: watchers see the click even if a panel consumes it.
	m.tickWatchers(dt, pointer)

	// An in-flight drag owns the pointer outright, whatever its z.
	dragging := false
	for _, e := range m.snapshotActive(true) {
		if e.drag.active {
			e.handleDrag(pointer)
			dragging = true
			break
		}
	}
	if !dragging {
		// Input, top z first; the first consumer wins the frame. Widgets
		// get first refusal so a button on a drag handle stays clickable.
		for _, e := range m.snapshotActive(true) {
			if ic, ok := e.content.(InteractiveContent); ok && !e.suppressed {
				if ic.HandlePointer(pointer, e.currentPos) {
					break
				}
			}
			if e.handleDrag(pointer) {
				break
			}
		}
	}

	// Timers may remove elements; they run on a snapshot.
	for _, e := range m.snapshotActive(false) {
		e.tickTimers(dt)
	}

	for _, e := range m.snapshotActive(false) {
		e.Update(dt)
	}
}

// Draw renders every active element in z order (ties break by id so the
// order is stable frame to frame).
func (m *Manager) Draw(screen *ebiten.Image) {
	for _, e := range m.snapshotActive(false) {
		if e.suppressed || e.content == nil {
			continue
		}
		e.content.Draw(screen, e.currentPos.X, e.currentPos.Y)
		if e.drag.active {
			// Drag affordance: accent outline while the user holds it.
			b := e.Bounds()
			vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H),
				2, color.RGBA{255, 220, 120, 200}, true)
		}
	}
}

// HitTest reports whether the point lands on any active, unsuppressed
// element. Hosts check it before treating a click as game input.
func (m *Manager) HitTest(p geom.Point) bool {
	for _, e := range m.active {
		if e.suppressed {
			continue
		}
		if e.Bounds().Contains(p) {
			return true
		}
	}
	return false
}

func (m *Manager) snapshotRegistry() []*FloatingElement {
	els := make([]*FloatingElement, 0, len(m.registry))
	for _, e := range m.registry {
		els = append(els, e)
	}
	sort.Slice(els, func(i, j int) bool { return els[i].id < els[j].id })
	return els
}

func (m *Manager) snapshotActive(topFirst bool) []*FloatingElement {
	els := make([]*FloatingElement, 0, len(m.active))
	for _, e := range m.active {
		els = append(els, e)
	}
	sort.Slice(els, func(i, j int) bool {
		if els[i].z() != els[j].z() {
			if topFirst {
				return els[i].z() > els[j].z()
			}
			return els[i].z() < els[j].z()
		}
		return els[i].id < els[j].id
	})
	return els
}

// --- Click-outside watcher ---

type clickWatcher struct {
	el       *FloatingElement
	cb       func()
	excluded []func() geom.Rect
	arm      float64 // seconds until the watcher goes live
	disposed bool
}

// OnClickOutside invokes cb when a press lands neither on el nor inside
// any excluded rect. The watcher arms after a short delay so the same
// click that opened the panel can't immediately close it. The returned
// disposer detaches it; destroying the element detaches it too.
func (m *Manager) OnClickOutside(el *FloatingElement, cb func(), excluded ...func() geom.Rect) func() {
	w := &clickWatcher{
		el:       el,
		cb:       cb,
		excluded: excluded,
		arm:      float64(config.ClickOutsideArmMs) / 1000,
	}
	m.watchers = append(m.watchers, w)
	dispose := func() { w.disposed = true }
	el.OnDestroy(dispose)
	return dispose
}

func (m *Manager) tickWatchers(dt float64, p PointerState) {
	live := m.watchers[:0]
	for _, w := range m.watchers {
		if w.disposed {
			continue
		}
		live = append(live, w)
	}
	m.watchers = live

	for _, w := range m.watchers {
		if w.arm > 0 {
			w.arm -= dt
			continue
		}
		if !p.JustPressed || !w.el.enabled {
			continue
		}
		pt := geom.Point{X: p.X, Y: p.Y}
		if w.el.Bounds().Contains(pt) {
			continue
		}
		outside := true
		for _, ex := range w.excluded {
			if ex().Contains(pt) {
				outside = false
				break
			}
		}
		if outside {
			w.cb()
		}
	}
}
