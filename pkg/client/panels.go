package client

import (
	"fmt"

	"rampart/pkg/game"
	"rampart/pkg/geom"
	"rampart/pkg/ui"

	log "github.com/sirupsen/logrus"
)

// Panels builds and owns every concrete piece of floating UI in the
// demo: HUD badges, the build toolbar, the tower popup, and the pause /
// settings / game-over dialogs. Everything goes through the manager's
// public surface.
type Panels struct {
	g *Game

	// Tower whose popup is open, for the range ring in the renderer.
	selected *game.Tower

	gameOverShown bool
}

func NewPanels(g *Game) *Panels {
	return &Panels{g: g}
}

// Mount creates the persistent HUD. Called once at startup.
func (p *Panels) Mount() {
	m := p.g.UI
	m.CreateHUDBadge("hud-gold", geom.Point{X: 10, Y: 10}, func() string {
		return fmt.Sprintf("Gold: %d", p.g.World.Gold())
	})
	m.CreateHUDBadge("hud-wave", geom.Point{X: 10, Y: 28}, func() string {
		return fmt.Sprintf("Wave: %d", p.g.World.Wave())
	})
	m.CreateHUDBadge("hud-lives", geom.Point{X: 10, Y: 46}, func() string {
		cur, _ := p.g.World.Base().Health()
		return fmt.Sprintf("Lives: %.0f", cur)
	})
	p.mountToolbar()
}

// mountToolbar builds the draggable build bar. Its position persists
// across runs; the first run parks it bottom-center.
func (p *Panels) mountToolbar() {
	m := p.g.UI
	defs := game.TowerDefs()

	width := float64(len(defs)*120 + 90)
	panel := ui.NewPanel(width, 44)
	for i, def := range defs {
		def := def
		btn := ui.NewButton(float64(10+i*120), 10, 110, 24,
			fmt.Sprintf("%s %dg", def.Name, def.Cost),
			func() { p.g.buildDefID = def.ID })
		panel.Add(btn, 0, 0)
	}
	menu := ui.NewButton(width-70, 10, 60, 24, "Menu", p.ShowSettings)
	menu.Style = ui.ButtonStyleSecondary
	panel.Add(menu, 0, 0)

	el := m.Create("toolbar", ui.KindPopup, ui.Options{
		Anchor:          geom.AnchorTopLeft,
		ScreenSpace:     true,
		Persistent:      true,
		Draggable:       true,
		PersistPosition: true,
	})
	el.SetContent(panel)
	el.Enable()

	if el.Position() == (geom.Point{}) {
		// Nothing stored yet: default to bottom-center, then hand the
		// position over to the user.
		b := p.g.Surface.Bounds()
		el.SetTarget(geom.Point{X: b.W/2 - width/2, Y: b.H - 56}, nil)
		el.UpdatePosition(true)
		el.SetTarget(nil, nil)
	}
}

// ShowTowerPopup opens the upgrade/sell popup anchored above the tower.
// Clicking anywhere else closes it.
func (p *Panels) ShowTowerPopup(t *game.Tower) {
	const id = "tower-popup"
	m := p.g.UI
	m.Remove(id)
	p.selected = t

	info := ui.NewLabel("")
	costs := ui.NewLabel("")
	refresh := func() {
		info.Text = fmt.Sprintf("%s  Lv%d", t.Def.Name, t.Level)
		if t.Level >= t.Def.MaxLevel {
			costs.Text = fmt.Sprintf("dmg %.0f  (max level)", t.Damage())
		} else {
			costs.Text = fmt.Sprintf("dmg %.0f  up %dg", t.Damage(), t.UpgradeCost())
		}
	}
	refresh()

	panel := ui.NewPanel(200, 92)
	panel.Add(info, 10, 8)
	panel.Add(costs, 10, 26)
	panel.Add(ui.NewButton(10, 52, 85, 26, "Upgrade", func() {
		if err := p.g.World.UpgradeTower(t); err != nil {
			log.Debugf("upgrade %s: %v", t.Def.ID, err)
			return
		}
		refresh()
	}), 0, 0)
	sell := ui.NewButton(105, 52, 85, 26, "Sell", func() {
		p.g.World.SellTower(t)
		m.Remove(id)
	})
	sell.Style = ui.ButtonStyleDestructive
	panel.Add(sell, 0, 0)

	el := m.Create(id, ui.KindPopup, ui.Options{
		Anchor:    geom.AnchorBottom,
		Offset:    geom.Point{Y: -12},
		AutoHide:  true,
		Smoothing: 0.35,
	})
	el.SetContent(panel)
	el.SetTarget(t, nil)
	el.OnDestroy(func() {
		if p.selected == t {
			p.selected = nil
		}
	})
	el.Enable()
	m.OnClickOutside(el, func() { m.Remove(id) })
}

// ShowSettings opens the draggable settings dialog.
func (p *Panels) ShowSettings() {
	m := p.g.UI
	body := ui.NewPanel(180, 64)
	body.BG = nil
	body.Add(ui.NewButton(0, 4, 180, 24, "Restart Run", func() {
		p.g.Restart()
		m.Remove("settings")
	}), 0, 0)
	resume := ui.NewButton(0, 34, 180, 24, "Close", func() { m.Remove("settings") })
	resume.Style = ui.ButtonStyleSecondary
	body.Add(resume, 0, 0)

	m.CreateDialog("settings", ui.DialogOptions{
		Title:     "Settings",
		Body:      body,
		Modal:     true,
		Closeable: true,
		Draggable: true,
	})
}

// TogglePause pauses the sim behind a modal dialog, hiding everything
// but the toolbar. Closing the dialog (button, backdrop, or Escape
// again) resumes.
func (p *Panels) TogglePause() {
	m := p.g.UI
	if p.g.World.GameOver() {
		return
	}
	if m.Get("pause") != nil {
		m.Remove("pause")
		return
	}

	p.g.World.SetPaused(true)
	m.DisableAllExcept("toolbar")

	body := ui.NewPanel(160, 34)
	body.BG = nil
	body.Add(ui.NewButton(0, 4, 160, 24, "Resume", func() { m.Remove("pause") }), 0, 0)

	m.CreateDialog("pause", ui.DialogOptions{
		Title:     "Paused",
		Body:      body,
		Modal:     true,
		Closeable: true,
		OnClose: func() {
			p.g.World.SetPaused(false)
			m.EnableAll()
		},
	})
}

// Tick watches for the end of the run.
func (p *Panels) Tick() {
	if p.g.World.GameOver() && !p.gameOverShown {
		p.gameOverShown = true
		p.showGameOver()
	}
}

func (p *Panels) showGameOver() {
	m := p.g.UI
	m.DisableAllExcept()

	body := ui.NewPanel(210, 66)
	body.BG = nil
	body.Add(ui.NewLabel(fmt.Sprintf("The base fell on wave %d.", p.g.World.Wave())), 0, 4)
	body.Add(ui.NewButton(0, 30, 210, 26, "Play Again", p.g.Restart), 0, 0)

	m.CreateDialog("game-over", ui.DialogOptions{
		Title: "Game Over",
		Body:  body,
		Modal: true,
	})
}

// Reset clears run-scoped UI after a restart.
func (p *Panels) Reset() {
	p.gameOverShown = false
	p.selected = nil
	p.g.UI.Remove("tower-popup")
	p.g.UI.Remove("game-over")
	p.g.UI.EnableAll()
}
