package ui

import (
	"testing"

	"rampart/pkg/geom"
)

func TestPositionRoundTrip(t *testing.T) {
	r := newRig()
	ps := r.m.positions

	ps.Save("k", geom.Point{X: 10, Y: 20})
	p, ok := ps.Load("k")
	if !ok || p != (geom.Point{X: 10, Y: 20}) {
		t.Fatalf("load = %+v, %v; want {10 20}, true", p, ok)
	}
}

func TestPositionRescaleOnViewportChange(t *testing.T) {
	r := newRig() // 800x600
	ps := r.m.positions

	ps.Save("k", geom.Point{X: 10, Y: 20})

	// Width doubles, height stays: x rescales, y stays.
	r.surface.bounds = geom.Rect{X: 0, Y: 0, W: 1600, H: 600}
	p, ok := ps.Load("k")
	if !ok || p != (geom.Point{X: 20, Y: 20}) {
		t.Fatalf("load after 2x width = %+v, %v; want {20 20}, true", p, ok)
	}
}

func TestPositionSmallDriftNotRescaled(t *testing.T) {
	r := newRig()
	ps := r.m.positions

	ps.Save("k", geom.Point{X: 100, Y: 100})

	// 5% drift is within tolerance: value comes back untouched.
	r.surface.bounds = geom.Rect{X: 0, Y: 0, W: 840, H: 600}
	p, ok := ps.Load("k")
	if !ok || p != (geom.Point{X: 100, Y: 100}) {
		t.Fatalf("load = %+v, %v; want {100 100}, true", p, ok)
	}
}

func TestPositionLoadGarbage(t *testing.T) {
	r := newRig()
	r.store.SetItem("floating-ui-position-bad", "{not json")
	if _, ok := r.m.positions.Load("floating-ui-position-bad"); ok {
		t.Fatalf("garbage parsed as a position")
	}

	r.store.SetItem("shape", `{"x":1,"y":2,"schemaVersion":99}`)
	if _, ok := r.m.positions.Load("shape"); ok {
		t.Fatalf("wrong schema version accepted")
	}
}

func TestPositionClear(t *testing.T) {
	r := newRig()
	ps := r.m.positions
	ps.Save("k", geom.Point{X: 1, Y: 2})
	ps.Clear("k")
	if _, ok := ps.Load("k"); ok {
		t.Fatalf("position survived clear")
	}
}

func TestPositionStoreUnavailable(t *testing.T) {
	// A nil store degrades to "nothing persisted", never a crash.
	r := newRig()
	r.m.positions = NewPositionStore(nil, r.surface)
	r.m.positions.Save("k", geom.Point{X: 1, Y: 2})
	if _, ok := r.m.positions.Load("k"); ok {
		t.Fatalf("nil store produced a value")
	}
	r.m.positions.Clear("k")
}

func TestRestoredPositionAppliedOnEnable(t *testing.T) {
	r := newRig()

	// Previous session saved a position for this panel.
	ps := NewPositionStore(r.store, r.surface)
	ps.Save("floating-ui-position-toolbar", geom.Point{X: 300, Y: 200})

	e := r.m.Create("toolbar", KindPopup, Options{
		ScreenSpace:     true,
		Persistent:      true,
		Draggable:       true,
		PersistPosition: true,
	})
	e.SetContent(&fakeContent{w: 120, h: 40})
	e.Enable()

	if e.Position() != (geom.Point{X: 300, Y: 200}) {
		t.Fatalf("restored position = %+v, want {300 200}", e.Position())
	}

	// Frames must not drift it away: the user owns this position.
	for i := 0; i < 5; i++ {
		r.frame()
	}
	if e.Position() != (geom.Point{X: 300, Y: 200}) {
		t.Fatalf("update loop overrode the restored position: %+v", e.Position())
	}
}

func TestRestoredPositionSelfHeals(t *testing.T) {
	r := newRig()
	ps := NewPositionStore(r.store, r.surface)
	// Saved near the right edge at 800 wide.
	ps.Save("floating-ui-position-p", geom.Point{X: 700, Y: 100})

	// Screen shrank by half: load rescales to 350, clamp keeps it inside,
	// and the corrected value is re-saved.
	r.surface.bounds = geom.Rect{X: 0, Y: 0, W: 400, H: 600}
	e := r.m.Create("p", KindPopup, Options{
		ScreenSpace:     true,
		PersistPosition: true,
	})
	e.SetContent(&fakeContent{w: 100, h: 40})
	e.Enable()

	if e.Position() != (geom.Point{X: 290, Y: 100}) {
		t.Fatalf("healed position = %+v, want {290 100}", e.Position())
	}
	healed, ok := ps.Load("floating-ui-position-p")
	if !ok || healed != (geom.Point{X: 290, Y: 100}) {
		t.Fatalf("store not self-healed: %+v, %v", healed, ok)
	}
}
