package simulation

import (
	"image/color"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// Palette is the fixed set of primary colors handed out to serpents and orbs.
var Palette = []color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},
	{R: 255, G: 102, B: 0, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 0, G: 255, B: 255, A: 255},
	{R: 0, G: 102, B: 255, A: 255},
	{R: 153, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 204, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
	{R: 0, G: 204, B: 204, A: 255},
}

const accentShade = 50

// randomColors picks a palette entry and derives its darker accent.
func randomColors(r *rand.Rand) (primary, accent color.RGBA) {
	primary = Palette[r.IntN(len(Palette))]
	return primary, Accent(primary)
}

// Accent darkens every channel of c by a fixed shade.
func Accent(c color.RGBA) color.RGBA {
	darken := func(v uint8) uint8 {
		if v < accentShade {
			return 0
		}
		return v - accentShade
	}
	return color.RGBA{R: darken(c.R), G: darken(c.G), B: darken(c.B), A: c.A}
}

// LerpColor blends a towards b; t is clamped to [0, 1].
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = geometry.Clamp(t, 0, 1)
	mix := func(x, y uint8) uint8 {
		return uint8(geometry.Lerp(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
