package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Toggle is a labelled checkbox flipped by a click or by its shortcut key.
type Toggle struct {
	Label    string
	Value    bool
	Key      ebiten.Key
	X, Y     float64
	Size     float64
	OnChange func(bool)
}

// NewToggle creates a toggle. Pass NoKey for no shortcut.
func NewToggle(x, y float64, label string, key ebiten.Key, value bool) *Toggle {
	return &Toggle{
		Label: label,
		Value: value,
		Key:   key,
		X:     x,
		Y:     y,
		Size:  14,
	}
}

func (t *Toggle) box() Rect { return Rect{X: t.X, Y: t.Y, W: t.Size, H: t.Size} }

// Flip inverts the value and notifies OnChange.
func (t *Toggle) Flip() {
	t.Value = !t.Value
	if t.OnChange != nil {
		t.OnChange(t.Value)
	}
}

func (t *Toggle) Update() {
	if clickedIn(t.box()) || keyPressed(t.Key) {
		t.Flip()
	}
}

func (t *Toggle) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(t.X), float32(t.Y),
		float32(t.Size), float32(t.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if t.Value {
		vector.FillRect(screen,
			float32(t.X+3), float32(t.Y+3),
			float32(t.Size-6), float32(t.Size-6),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, label(t.Label, t.Key), int(t.X+t.Size+8), int(t.Y))
}

func (t *Toggle) Height() float64 { return t.Size + 8 }

func (t *Toggle) place(x, y float64) { t.X, t.Y = x, y }
func (t *Toggle) shortcut() ebiten.Key { return t.Key }
func (t *Toggle) activate()            { t.Flip() }

func label(text string, key ebiten.Key) string {
	if key == NoKey {
		return text
	}
	return text + " [" + key.String() + "]"
}
