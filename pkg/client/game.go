package client

import (
	"fmt"

	"rampart/pkg/config"
	"rampart/pkg/game"
	"rampart/pkg/geom"
	"rampart/pkg/storage"
	"rampart/pkg/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
)

// Game glues the sim to Ebiten: Update pumps input, the world, and the
// floating-UI manager; Draw renders the world and then the UI layer on
// top; Layout feeds window resizes to the surface.
type Game struct {
	World   *game.World
	Camera  *Camera
	Surface *Surface
	UI      *ui.Manager

	panels *Panels

	healthBars map[*game.Creep]string
	hpSeq      int

	// Tower type armed for placement by the toolbar; "" when none.
	buildDefID string
}

func NewGame(store storage.Store) *Game {
	surface := NewSurface(config.ScreenWidth, config.ScreenHeight)
	camera := NewCamera()
	g := &Game{
		World:      game.NewWorld(),
		Camera:     camera,
		Surface:    surface,
		UI:         ui.NewManager(surface, camera, store),
		healthBars: make(map[*game.Creep]string),
	}
	g.panels = NewPanels(g)
	g.panels.Mount()
	surface.OnResize(g.UI.UpdateAllPositions)
	return g
}

func (g *Game) Update() error {
	const dt = 1.0 / 60 // Ebiten's fixed tick rate

	g.handleInput()
	g.World.Update(dt)
	g.spawnDamageNumbers()
	g.syncHealthBars()
	g.panels.Tick()
	g.UI.Tick(dt)
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.panels.TogglePause()
	}
	if g.World.GameOver() {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.buildDefID = ""
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}

	mx, my := ebiten.CursorPosition()
	screenPt := geom.Point{X: float64(mx), Y: float64(my)}
	if g.UI.HitTest(screenPt) {
		// The manager owns this click.
		return
	}
	worldPt := g.Camera.ScreenToWorld(screenPt)

	if g.buildDefID != "" {
		if _, err := g.World.PlaceTower(g.buildDefID, worldPt); err != nil {
			log.Debugf("place %s at %+v: %v", g.buildDefID, worldPt, err)
		} else {
			g.buildDefID = ""
		}
		return
	}
	if t := g.World.TowerAt(worldPt); t != nil {
		g.panels.ShowTowerPopup(t)
	}
}

func (g *Game) spawnDamageNumbers() {
	for _, ev := range g.World.DrainEvents() {
		clr := damageColor
		if ev.Killed {
			clr = killColor
		}
		g.UI.ShowDamageNumber(fmt.Sprintf("%.0f", ev.Amount), geom.Point{X: ev.X, Y: ev.Y}, clr)
	}
}

// syncHealthBars keeps one bar per live creep. Bars for dead or leaked
// creeps go away; newly spawned creeps get one. Skipped while the sim is
// not running so a pause doesn't resurrect bars the pause screen hid.
func (g *Game) syncHealthBars() {
	if g.World.State() != game.StateRunning {
		return
	}
	alive := make(map[*game.Creep]bool, len(g.World.Creeps()))
	for _, c := range g.World.Creeps() {
		alive[c] = true
		if id, ok := g.healthBars[c]; ok && g.UI.Get(id) != nil {
			continue
		}
		g.hpSeq++
		id := fmt.Sprintf("creep-hp-%d", g.hpSeq)
		g.healthBars[c] = id
		g.UI.CreateHealthBar(id, c, c)
	}
	for c, id := range g.healthBars {
		if !alive[c] {
			g.UI.Remove(id)
			delete(g.healthBars, c)
		}
	}
}

// Restart throws the world away and starts over; persistent UI stays.
func (g *Game) Restart() {
	for _, id := range g.healthBars {
		g.UI.Remove(id)
	}
	g.healthBars = make(map[*game.Creep]string)
	g.buildDefID = ""
	g.World = game.NewWorld()
	g.panels.Reset()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Surface.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
