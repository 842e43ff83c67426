package ui

import (
	"image/color"

	"rampart/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Widgets here carry positions relative to their panel; the floating
// element decides where the panel itself lives on screen.

// Label Widget
type Label struct {
	Text  string
	Color color.Color
}

func NewLabel(text string) *Label {
	return &Label{Text: text, Color: color.White}
}

func (l *Label) Size() (float64, float64) {
	// basicfont.Face7x13 is 7px advance, 13px tall.
	return float64(7 * len(l.Text)), 13
}

func (l *Label) Draw(screen *ebiten.Image, x, y float64) {
	text.Draw(screen, l.Text, basicfont.Face7x13, int(x), int(y)+11, l.Color)
}

// Button Styles
type ButtonStyle int

const (
	ButtonStylePrimary ButtonStyle = iota
	ButtonStyleSecondary
	ButtonStyleDestructive
)

// Button Widget
type Button struct {
	X, Y, W, H float64 // relative to the panel
	Text       string
	OnClick    func()
	Style      ButtonStyle
	IsHovered  bool
}

func NewButton(x, y, w, h float64, label string, onClick func()) *Button {
	return &Button{X: x, Y: y, W: w, H: h, Text: label, OnClick: onClick, Style: ButtonStylePrimary}
}

func (b *Button) Size() (float64, float64) { return b.W, b.H }

func (b *Button) rect(origin geom.Point) geom.Rect {
	return geom.Rect{X: origin.X + b.X, Y: origin.Y + b.Y, W: b.W, H: b.H}
}

func (b *Button) HandlePointer(p PointerState, origin geom.Point) bool {
	r := b.rect(origin)
	b.IsHovered = r.Contains(geom.Point{X: p.X, Y: p.Y})
	if b.IsHovered && p.JustPressed {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}

func (b *Button) Draw(screen *ebiten.Image, x, y float64) {
	var bg, border color.Color
	switch b.Style {
	case ButtonStyleSecondary:
		if b.IsHovered {
			bg = color.RGBA{80, 80, 80, 255}
		} else {
			bg = color.RGBA{40, 40, 40, 255}
		}
		border = color.RGBA{100, 100, 100, 255}
	case ButtonStyleDestructive:
		if b.IsHovered {
			bg = color.RGBA{200, 80, 80, 255}
		} else {
			bg = color.RGBA{180, 40, 40, 255}
		}
		border = color.RGBA{255, 100, 100, 255}
	default:
		if b.IsHovered {
			bg = color.RGBA{100, 100, 200, 255}
		} else {
			bg = color.RGBA{60, 60, 180, 255}
		}
		border = color.RGBA{200, 200, 255, 255}
	}

	bx, by := float32(x+b.X), float32(y+b.Y)
	vector.DrawFilledRect(screen, bx, by, float32(b.W), float32(b.H), bg, false)
	vector.StrokeRect(screen, bx, by, float32(b.W), float32(b.H), 1, border, false)

	// Center the label, with a small floor so it never leaves the box.
	tw := 7 * len(b.Text)
	tx := int(x+b.X) + (int(b.W)-tw)/2
	if tx < int(x+b.X)+4 {
		tx = int(x+b.X) + 4
	}
	ebitenutil.DebugPrintAt(screen, b.Text, tx, int(y+b.Y+b.H/2-8))
}

// PanelChild pairs a widget with its position inside the panel.
type PanelChild struct {
	Widget Content
	RelX   float64
	RelY   float64
}

// Panel is a fixed-size container content: background, border, children
// at relative offsets. A nil BG skips the background and border, for
// panels nested inside chrome that already paints one. Input goes to
// children in reverse order so the last-added (visually top) widget
// wins, and a press anywhere on the panel body is consumed so it can't
// fall through to the game.
type Panel struct {
	W, H     float64
	BG       color.Color
	Children []PanelChild
}

func NewPanel(w, h float64) *Panel {
	return &Panel{W: w, H: h, BG: color.RGBA{30, 30, 40, 235}}
}

func (p *Panel) Add(c Content, relX, relY float64) {
	p.Children = append(p.Children, PanelChild{Widget: c, RelX: relX, RelY: relY})
}

func (p *Panel) Size() (float64, float64) { return p.W, p.H }

func (p *Panel) Draw(screen *ebiten.Image, x, y float64) {
	if p.BG != nil {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(p.W), float32(p.H), p.BG, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(p.W), float32(p.H), 1, color.White, false)
	}
	for _, child := range p.Children {
		child.Widget.Draw(screen, x+child.RelX, y+child.RelY)
	}
}

func (p *Panel) HandlePointer(ps PointerState, origin geom.Point) bool {
	for i := len(p.Children) - 1; i >= 0; i-- {
		child := p.Children[i]
		if ic, ok := child.Widget.(InteractiveContent); ok {
			childOrigin := geom.Point{X: origin.X + child.RelX, Y: origin.Y + child.RelY}
			if ic.HandlePointer(ps, childOrigin) {
				return true
			}
		}
	}
	// Swallow presses on the panel body.
	body := geom.Rect{X: origin.X, Y: origin.Y, W: p.W, H: p.H}
	return ps.JustPressed && body.Contains(geom.Point{X: ps.X, Y: ps.Y})
}

// DialogContent is a Panel with the structured dialog chrome: title bar,
// optional close affordance, and a content slot below the header.
type DialogContent struct {
	Panel
	Title    string
	titleBar float64
}

const dialogTitleBarH = 24

func NewDialogContent(title string, body Content, closeable bool, onClose func()) *DialogContent {
	bw, bh := 0.0, 0.0
	if body != nil {
		bw, bh = body.Size()
	}
	w := bw + 20
	if minW := float64(7*len(title) + 60); w < minW {
		w = minW
	}
	d := &DialogContent{
		Panel:    Panel{W: w, H: bh + dialogTitleBarH + 20, BG: color.RGBA{30, 30, 40, 245}},
		Title:    title,
		titleBar: dialogTitleBarH,
	}
	if closeable {
		closeBtn := NewButton(w-22, 3, 18, 18, "X", onClose)
		closeBtn.Style = ButtonStyleDestructive
		d.Add(closeBtn, 0, 0)
	}
	if body != nil {
		d.Add(body, 10, dialogTitleBarH+10)
	}
	return d
}

func (d *DialogContent) Draw(screen *ebiten.Image, x, y float64) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(d.W), float32(d.H), d.BG, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(d.W), float32(d.H), 1, color.White, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(d.W), float32(d.titleBar),
		color.RGBA{80, 80, 90, 255}, false)
	text.Draw(screen, d.Title, basicfont.Face7x13, int(x)+8, int(y)+16, color.White)
	for _, child := range d.Children {
		child.Widget.Draw(screen, x+child.RelX, y+child.RelY)
	}
}

// TitleBarHandle is a DragHandle resolver for dialog-style content: only
// the header row drags.
func TitleBarHandle(w, h float64) (geom.Rect, bool) {
	if w == 0 || h == 0 {
		return geom.Rect{}, false
	}
	return geom.Rect{X: 0, Y: 0, W: w, H: dialogTitleBarH}, true
}
