package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick when clicked or when its shortcut key is pressed.
type Button struct {
	Label   string
	Key     ebiten.Key
	X, Y    float64
	Width   float64
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA
}

const buttonHeight = 20

// NewButton creates a button. Pass NoKey for no shortcut.
func NewButton(x, y, width float64, label string, key ebiten.Key, onClick func()) *Button {
	return &Button{
		Label:      label,
		Key:        key,
		X:          x,
		Y:          y,
		Width:      width,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) bounds() Rect { return Rect{X: b.X, Y: b.Y, W: b.Width, H: buttonHeight} }

func (b *Button) Update() {
	if clickedIn(b.bounds()) || keyPressed(b.Key) {
		b.activate()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.bounds().Contains(cursor()) {
		bg = b.HoverColor
	}
	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), buttonHeight,
		bg, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), buttonHeight,
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, label(b.Label, b.Key), int(b.X+6), int(b.Y+2))
}

func (b *Button) Height() float64 { return buttonHeight + 6 }

func (b *Button) place(x, y float64) { b.X, b.Y = x, y }
func (b *Button) shortcut() ebiten.Key { return b.Key }

func (b *Button) activate() {
	if b.OnClick != nil {
		b.OnClick()
	}
}
