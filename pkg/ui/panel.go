package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const titleHeight = 24

// Panel stacks widgets vertically under a title. A collapsed panel shows only its title.
type Panel struct {
	Title     string
	X, Y      float64
	Width     float64
	Collapsed bool
	Widgets   []Widget

	BGColor     color.RGBA
	BorderColor color.RGBA
}

func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddToggle appends a toggle row and returns it.
func (p *Panel) AddToggle(label string, key ebiten.Key, value bool) *Toggle {
	t := NewToggle(0, 0, label, key, value)
	p.add(t)
	return t
}

// AddButton appends a button row and returns it.
func (p *Panel) AddButton(label string, key ebiten.Key, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-20, label, key, onClick)
	p.add(b)
	return b
}

func (p *Panel) add(w Widget) {
	p.Widgets = append(p.Widgets, w)
	p.layout()
}

// layout places every widget below the title.
func (p *Panel) layout() {
	y := p.Y + titleHeight
	for _, w := range p.Widgets {
		w.place(p.X+10, y)
		y += w.Height()
	}
}

// Bounds is the area the panel currently covers on screen.
func (p *Panel) Bounds() Rect {
	h := float64(titleHeight)
	if !p.Collapsed {
		for _, w := range p.Widgets {
			h += w.Height()
		}
		h += 4
	}
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: h}
}

// Hovered reports whether the cursor is over the panel, so clicks there are not game input.
func (p *Panel) Hovered() bool {
	return p.Bounds().Contains(cursor())
}

// Update collapses the panel on a title click and forwards input to widgets.
// Shortcut keys work even while collapsed.
func (p *Panel) Update() {
	if clickedIn(Rect{X: p.X, Y: p.Y, W: p.Width, H: titleHeight}) {
		p.Collapsed = !p.Collapsed
	}
	for _, w := range p.Widgets {
		if !p.Collapsed {
			w.Update()
		} else if keyPressed(w.shortcut()) {
			w.activate()
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	b := p.Bounds()
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), p.BGColor, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, p.BorderColor, true)

	marker := "-"
	if p.Collapsed {
		marker = "+"
	}
	ebitenutil.DebugPrintAt(screen, marker+" "+p.Title, int(p.X+8), int(p.Y+5))
	if p.Collapsed {
		return
	}
	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
