// Package client is the desktop front-end: it drives a WorldActor from the ebiten loop,
// feeds it pointer input and draws the snapshots it publishes.
package client

import (
	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

const (
	MinZoom = 0.25
	MaxZoom = 2.5
)

// Camera maps world coordinates to screen pixels. Center is the world point shown in the
// middle of a Width x Height viewport.
type Camera struct {
	Center        geometry.Vector2D
	Zoom          float64
	Width, Height float64
}

func NewCamera(width, height float64) *Camera {
	return &Camera{Zoom: 1, Width: width, Height: height}
}

// ToScreen converts a world position to screen pixels.
func (c *Camera) ToScreen(p geometry.Vector2D) (float32, float32) {
	d := p.Sub(c.Center).Mul(c.Zoom)
	return float32(d.X + c.Width/2), float32(d.Y + c.Height/2)
}

// ToWorldOffset converts a screen position to an offset from Center in world units.
func (c *Camera) ToWorldOffset(x, y float64) geometry.Vector2D {
	return geometry.Vector2D{X: x - c.Width/2, Y: y - c.Height/2}.Mul(1 / c.Zoom)
}

// ZoomBy multiplies the zoom, keeping it inside [MinZoom, MaxZoom].
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = geometry.Clamp(c.Zoom*factor, MinZoom, MaxZoom)
}

// Visible reports whether a circle of world radius r at p overlaps the viewport.
func (c *Camera) Visible(p geometry.Vector2D, r float64) bool {
	x, y := c.ToScreen(p)
	sr := float32(r * c.Zoom)
	return x+sr >= 0 && y+sr >= 0 && x-sr <= float32(c.Width) && y-sr <= float32(c.Height)
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(length float64) float32 {
	return float32(length * c.Zoom)
}
