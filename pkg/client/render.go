package client

import (
	"image/color"

	"rampart/pkg/config"
	"rampart/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	grassColor  = color.RGBA{R: 24, G: 48, B: 24, A: 255}
	laneColor   = color.RGBA{R: 120, G: 100, B: 70, A: 255} // packed dirt
	baseColor   = color.RGBA{R: 70, G: 110, B: 200, A: 255}
	ringColor   = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	damageColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	killColor   = color.RGBA{R: 255, G: 200, B: 80, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(grassColor)
	g.drawLane(screen)
	g.drawTowers(screen)
	g.drawCreeps(screen)

	g.UI.Draw(screen)

	if g.buildDefID != "" {
		ebitenutil.DebugPrintAt(screen, "Placing: "+g.buildDefID+" (right-click cancels)", 10, int(g.Surface.Bounds().H)-20)
	}
}

// fillWorldRect paints a world-space rect through the camera.
func (g *Game) fillWorldRect(screen *ebiten.Image, r geom.Rect, clr color.Color) {
	tl := g.Camera.WorldToScreen(geom.Point{X: r.X, Y: r.Y})
	z := g.Camera.Zoom()
	vector.DrawFilledRect(screen, float32(tl.X), float32(tl.Y), float32(r.W*z), float32(r.H*z), clr, false)
}

func (g *Game) drawLane(screen *ebiten.Image) {
	base := g.World.Base().GetPosition()
	half := float64(config.TileSize) / 2
	g.fillWorldRect(screen, geom.Rect{
		X: -float64(config.TileSize),
		Y: base.Y - half,
		W: base.X + 2*float64(config.TileSize),
		H: float64(config.TileSize),
	}, laneColor)
	g.fillWorldRect(screen, geom.Rect{X: base.X - 14, Y: base.Y - 22, W: 28, H: 44}, baseColor)
}

func (g *Game) drawTowers(screen *ebiten.Image) {
	for _, t := range g.World.Towers() {
		g.fillWorldRect(screen, t.Footprint(), t.Def.Color)
		if g.panels.selected == t {
			c := g.Camera.WorldToScreen(t.Position)
			vector.StrokeCircle(screen, float32(c.X), float32(c.Y),
				float32(t.Range()*g.Camera.Zoom()), 1, ringColor, true)
		}
	}
}

func (g *Game) drawCreeps(screen *ebiten.Image) {
	for _, c := range g.World.Creeps() {
		g.fillWorldRect(screen, geom.Rect{
			X: c.X - c.Def.Width/2,
			Y: c.Y - c.Def.Height/2,
			W: c.Def.Width,
			H: c.Def.Height,
		}, c.Def.Color)
	}
}
