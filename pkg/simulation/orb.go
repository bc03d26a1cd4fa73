package simulation

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// Orb is a piece of food. Its radius is both its size and its nutrition value.
type Orb struct {
	Pos     geometry.Vector2D
	Radius  float64
	Primary color.RGBA
	Accent  color.RGBA
	Temp    bool              // dropped by a dead serpent; vanishes instead of respawning
	Shake   geometry.Vector2D // cosmetic wobble, never used by the simulation

	attracted bool // pulled by a serpent this tick
	removed   bool // staged for removal at the end of the tick
	seed      int64
}

func newOrb(cfg *Config, r *rand.Rand) *Orb {
	o := &Orb{seed: r.Int64N(1 << 31)}
	o.regen(cfg, r)
	return o
}

// newTempOrb drops a one-shot orb at an explicit position.
func newTempOrb(cfg *Config, r *rand.Rand, pos geometry.Vector2D) *Orb {
	o := newOrb(cfg, r)
	o.Pos = pos.ClampToCircle(cfg.FoodSpawnRadius())
	o.Temp = true
	return o
}

// regen moves a regular orb somewhere new, or stages a temp orb for removal.
func (o *Orb) regen(cfg *Config, r *rand.Rand) {
	if o.Temp {
		o.removed = true
		return
	}
	o.Pos = geometry.Vector2D{
		X: geometry.SignedGauss(r, 0, cfg.WorldRadius),
		Y: geometry.SignedGauss(r, 0, cfg.WorldRadius),
	}.ClampToCircle(cfg.FoodSpawnRadius())
	o.Radius = float64(geometry.RandInt(r, cfg.OrbSizeMin, cfg.OrbSizeMax))
	o.Primary, o.Accent = randomColors(r)
}

// feed lets one serpent interact with the orb. Within EatDistance the orb drifts
// towards the head, at most once per tick across all serpents. At a gap of zero or less
// it is eaten. It reports whether the orb was consumed.
func (o *Orb) feed(s *Serpent, cfg *Config, dt float64) bool {
	toOrb := o.Pos.Sub(s.Head())
	dist := toOrb.Len()
	gap := dist - o.Radius - s.Radius()

	if gap < cfg.EatDistance && !o.attracted {
		o.attracted = true
		pull := cfg.BoostSpeed * cfg.OrbPullFactor * dt
		o.Pos = o.Pos.Sub(toOrb.NormalizeTo(math.Min(pull, dist)))
	}
	if gap > 0 {
		return false
	}
	s.Grow(o.Radius)
	s.LastOrbTime = 0
	return true
}

// wobble refreshes the cosmetic shake offset.
func (o *Orb) wobble(cfg *Config, t float64) {
	o.Shake = geometry.Noise2D(t*cfg.ShakeSpeed, o.seed).Mul(cfg.ShakeSize)
}

func (o *Orb) clone() *Orb {
	c := *o
	return &c
}
