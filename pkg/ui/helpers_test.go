package ui

import (
	"fmt"
	"image/color"
	"testing"

	"rampart/pkg/geom"
)

// --- dialogs ---

func TestDialogCenteredAndRecenters(t *testing.T) {
	r := newRig()
	d := r.m.CreateDialog("pause", DialogOptions{
		Title: "Pause",
		Body:  &fakeContent{w: 100, h: 60},
	})

	// Title "Pause": min width 7*5+60 = 95; body wants 120, so 120 wins.
	// Height = 60 + 24 title bar + 20 padding.
	b := d.Bounds()
	if b.W != 120 || b.H != 104 {
		t.Fatalf("dialog size = %vx%v, want 120x104", b.W, b.H)
	}
	if d.Position() != (geom.Point{X: 340, Y: 248}) {
		t.Fatalf("dialog position = %+v, want centered {340 248}", d.Position())
	}

	// Resize: the dialog follows the new center on the next frame.
	r.surface.bounds = geom.Rect{X: 0, Y: 0, W: 400, H: 400}
	r.frame()
	if d.Position() != (geom.Point{X: 140, Y: 148}) {
		t.Fatalf("dialog did not re-center after resize: %+v", d.Position())
	}
}

func TestModalDialogBackdrop(t *testing.T) {
	r := newRig()
	closes := 0
	d := r.m.CreateDialog("confirm", DialogOptions{
		Title:   "Confirm",
		Body:    &fakeContent{w: 100, h: 60},
		Modal:   true,
		OnClose: func() { closes++ },
	})

	bd := r.m.Get("confirm-backdrop")
	if bd == nil {
		t.Fatalf("modal dialog has no backdrop")
	}
	if bd.z() != d.z()-1 {
		t.Fatalf("backdrop z = %d, want dialog z - 1 = %d", bd.z(), d.z()-1)
	}

	// A press on the dialog body is swallowed: nothing closes.
	r.pointer = PointerState{X: 400, Y: 300, Pressed: true, JustPressed: true}
	r.frame()
	if closes != 0 {
		t.Fatalf("press on the dialog body closed it")
	}

	r.pointer = PointerState{}
	r.frame()

	// A press on the backdrop closes the dialog once and removes both.
	r.pointer = PointerState{X: 50, Y: 50, Pressed: true, JustPressed: true}
	r.frame()
	if closes != 1 {
		t.Fatalf("backdrop press fired OnClose %d times, want 1", closes)
	}
	if r.m.Get("confirm") != nil || r.m.Get("confirm-backdrop") != nil {
		t.Fatalf("dialog or backdrop survived the close")
	}
}

func TestDialogCloseButton(t *testing.T) {
	r := newRig()
	closes := 0
	d := r.m.CreateDialog("settings", DialogOptions{
		Title:     "Settings",
		Body:      &fakeContent{w: 100, h: 60},
		Modal:     true,
		Closeable: true,
		OnClose:   func() { closes++ },
	})

	// The X button sits in the title bar's top-right corner.
	pos := d.Position()
	r.pointer = PointerState{X: pos.X + 120 - 12, Y: pos.Y + 12, Pressed: true, JustPressed: true}
	r.frame()

	if closes != 1 {
		t.Fatalf("close button fired OnClose %d times, want 1", closes)
	}
	if r.m.Get("settings") != nil || r.m.Get("settings-backdrop") != nil {
		t.Fatalf("close button did not remove dialog and backdrop")
	}
}

func TestProgrammaticRemoveFiresOnCloseOnce(t *testing.T) {
	r := newRig()
	closes := 0
	r.m.CreateDialog("pause", DialogOptions{
		Title:   "Paused",
		Body:    &fakeContent{w: 80, h: 40},
		Modal:   true,
		OnClose: func() { closes++ },
	})

	r.m.Remove("pause")
	if closes != 1 {
		t.Fatalf("Remove fired OnClose %d times, want 1", closes)
	}
	if r.m.Get("pause-backdrop") != nil {
		t.Fatalf("backdrop survived programmatic removal")
	}
}

func TestDuplicateDialogReturnsExisting(t *testing.T) {
	r := newRig()
	a := r.m.CreateDialog("d", DialogOptions{Title: "A", Body: &fakeContent{w: 50, h: 50}})
	b := r.m.CreateDialog("d", DialogOptions{Title: "B", Body: &fakeContent{w: 99, h: 99}})
	if a != b {
		t.Fatalf("duplicate dialog id produced a second instance")
	}
}

// --- damage numbers ---

func TestDamageNumberPlacementAndExpiry(t *testing.T) {
	r := newRig()
	e := r.m.ShowDamageNumber("12", geom.Point{X: 100, Y: 100}, color.White)

	// Label "12" is 14x13; bottom anchor plus the -8 lift puts the
	// top-left at (93, 79).
	if e.Position() != (geom.Point{X: 93, Y: 79}) {
		t.Fatalf("damage number at %+v, want {93 79}", e.Position())
	}

	for i := 0; i < 55; i++ { // ~917ms: still visible
		r.frame()
	}
	if r.m.Get(e.ID()) == nil {
		t.Fatalf("damage number expired early")
	}
	for i := 0; i < 8; i++ { // past the 1s lifetime
		r.frame()
	}
	if r.m.Get(e.ID()) != nil {
		t.Fatalf("damage number failed to expire")
	}
}

func TestDamageNumberIDsUnique(t *testing.T) {
	r := newRig()
	a := r.m.ShowDamageNumber("1", geom.Point{}, color.White)
	b := r.m.ShowDamageNumber("2", geom.Point{}, color.White)
	if a.ID() == b.ID() {
		t.Fatalf("two damage numbers share id %q", a.ID())
	}
}

// --- HUD badges ---

func TestHUDBadgeRefreshes(t *testing.T) {
	r := newRig()
	gold := 100
	e := r.m.CreateHUDBadge("gold", geom.Point{X: 10, Y: 10}, func() string {
		return fmt.Sprintf("Gold: %d", gold)
	})

	label := e.content.(*Label)
	if label.Text != "Gold: 100" {
		t.Fatalf("initial badge text %q", label.Text)
	}

	gold = 250
	for i := 0; i < 18; i++ { // 300ms: past the 250ms refresh interval
		r.frame()
	}
	if label.Text != "Gold: 250" {
		t.Fatalf("badge text %q, want refreshed value", label.Text)
	}
}

// --- health bars ---

type fakeHealth struct {
	cur, max float64
}

func (f *fakeHealth) Health() (float64, float64) { return f.cur, f.max }

func TestHealthBarFractionTracksSource(t *testing.T) {
	r := newRig()
	ent := &fieldEntity{X: 200, Y: 200}
	hp := &fakeHealth{cur: 80, max: 100}
	e := r.m.CreateHealthBar("hb", ent, hp)

	bar := e.content.(*healthBarContent)
	if bar.frac != 0.8 {
		t.Fatalf("initial fill = %v, want 0.8", bar.frac)
	}

	hp.cur = 30
	for i := 0; i < 8; i++ { // past the 100ms refresh interval
		r.frame()
	}
	if bar.frac != 0.3 {
		t.Fatalf("fill = %v, want 0.3", bar.frac)
	}

	// Overkill and a broken max both floor at empty.
	hp.cur = -10
	for i := 0; i < 8; i++ {
		r.frame()
	}
	if bar.frac != 0 {
		t.Fatalf("negative health gave fill %v", bar.frac)
	}
	hp.max = 0
	for i := 0; i < 8; i++ {
		r.frame()
	}
	if bar.frac != 0 {
		t.Fatalf("zero max gave fill %v", bar.frac)
	}
}

func TestHealthBarSitsAboveEntity(t *testing.T) {
	r := newRig()
	ent := &fieldEntity{X: 200, Y: 200}
	e := r.m.CreateHealthBar("hb", ent, &fakeHealth{cur: 1, max: 1})

	// 32x5 bar, bottom anchor, -6 lift: top-left (184, 189).
	if e.Position() != (geom.Point{X: 184, Y: 189}) {
		t.Fatalf("health bar at %+v, want {184 189}", e.Position())
	}
}

// --- click-outside ---

func TestClickOutsideArmsThenFires(t *testing.T) {
	r := newRig()
	e := r.m.Create("menu", KindPopup, Options{Anchor: geom.AnchorTopLeft, ScreenSpace: true})
	e.SetContent(&fakeContent{w: 100, h: 100})
	e.SetTarget(geom.Point{X: 300, Y: 300}, nil)
	e.Enable()

	fired := 0
	r.m.OnClickOutside(e, func() { fired++ })

	// A press inside the arming window is ignored, even outside the box.
	r.pointer = PointerState{X: 10, Y: 10, Pressed: true, JustPressed: true}
	r.frame()
	if fired != 0 {
		t.Fatalf("watcher fired before arming")
	}

	r.pointer = PointerState{}
	for i := 0; i < 20; i++ { // well past the 250ms arming delay
		r.frame()
	}

	// Inside the element: no fire.
	r.pointer = PointerState{X: 350, Y: 350, Pressed: true, JustPressed: true}
	r.frame()
	if fired != 0 {
		t.Fatalf("watcher fired for a press inside the element")
	}

	r.pointer = PointerState{}
	r.frame()
	r.pointer = PointerState{X: 10, Y: 10, Pressed: true, JustPressed: true}
	r.frame()
	if fired != 1 {
		t.Fatalf("watcher fired %d times for an outside press, want 1", fired)
	}
}

func TestClickOutsideExcludedRect(t *testing.T) {
	r := newRig()
	e := r.m.Create("menu", KindPopup, Options{Anchor: geom.AnchorTopLeft, ScreenSpace: true})
	e.SetContent(&fakeContent{w: 100, h: 100})
	e.SetTarget(geom.Point{X: 300, Y: 300}, nil)
	e.Enable()

	fired := 0
	toggle := geom.Rect{X: 0, Y: 0, W: 40, H: 40}
	r.m.OnClickOutside(e, func() { fired++ }, func() geom.Rect { return toggle })

	for i := 0; i < 20; i++ {
		r.frame()
	}

	// The excluded rect (say, the button that opened the menu) is safe.
	r.pointer = PointerState{X: 20, Y: 20, Pressed: true, JustPressed: true}
	r.frame()
	if fired != 0 {
		t.Fatalf("watcher fired for a press inside an excluded rect")
	}
}

func TestClickOutsideDetachesOnDestroy(t *testing.T) {
	r := newRig()
	e := r.m.Create("menu", KindPopup, Options{Anchor: geom.AnchorTopLeft, ScreenSpace: true})
	e.SetContent(&fakeContent{w: 100, h: 100})
	e.SetTarget(geom.Point{X: 300, Y: 300}, nil)
	e.Enable()

	fired := 0
	r.m.OnClickOutside(e, func() { fired++ })
	e.Destroy()

	// Keep the loop alive with another element so Tick actually runs.
	o := r.m.Create("other", KindCustom, Options{ScreenSpace: true})
	o.SetContent(&fakeContent{w: 4, h: 4})
	o.SetTarget(geom.Point{}, nil)
	o.Enable()

	for i := 0; i < 20; i++ {
		r.frame()
	}
	r.pointer = PointerState{X: 10, Y: 10, Pressed: true, JustPressed: true}
	r.frame()
	if fired != 0 {
		t.Fatalf("watcher outlived its element")
	}
}
