package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// NoKey marks a widget without a keyboard shortcut.
const NoKey ebiten.Key = -1

// Widget is a fixed-height row of a Panel.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	place(x, y float64)
	shortcut() ebiten.Key
	activate()
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the screen point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func cursor() (float64, float64) {
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my)
}

// clickedIn reports a fresh left click inside r.
func clickedIn(r Rect) bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	return r.Contains(cursor())
}

// keyPressed reports a fresh press of key. NoKey is never pressed.
func keyPressed(key ebiten.Key) bool {
	return key != NoKey && inpututil.IsKeyJustPressed(key)
}
