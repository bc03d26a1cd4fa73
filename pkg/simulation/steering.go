package simulation

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// PlayerSteering follows the pointer.
type PlayerSteering struct {
	Input PointerInput
}

func (p *PlayerSteering) Target(_ *Serpent, _ *View, _ float64) Target {
	return Target{Direction: p.Input.Pointer(), Boost: p.Input.Boosting()}
}

// HeuristicSteering is a potential field: pulled by the nearest orb, pushed away from
// the nearest body, herded back from the edge. It turns at a bounded rate.
type HeuristicSteering struct {
	cfg     *Config
	heading float64
	threat  float64
	phase   float64 // decorrelates the wander of different bots
	seed    int64
}

// NewHeuristicSteering starts facing a random direction.
func NewHeuristicSteering(cfg *Config, r *rand.Rand) *HeuristicSteering {
	return &HeuristicSteering{
		cfg:     cfg,
		heading: r.Float64() * 2 * math.Pi,
		phase:   r.Float64() * 10000,
		seed:    r.Int64N(1 << 31),
	}
}

// Heading is the bot's own clamped heading, which it feeds to the serpent as a target.
func (h *HeuristicSteering) Heading() float64 { return h.heading }

// Threat is the scaled danger of the closest body seen last tick, zero when none was in range.
func (h *HeuristicSteering) Threat() float64 { return h.threat }

func (h *HeuristicSteering) Target(s *Serpent, v *View, dt float64) Target {
	cfg := h.cfg
	head := s.Head()
	desired := h.heading

	if orb := v.NearestOrb(head); orb != nil {
		weight := cfg.BotOrbAttract
		if h.threat > cfg.BotThreatLimit {
			weight = cfg.BotOrbAttractFar
		}
		desired += weight * geometry.AngleDelta(desired, orb.Pos.Sub(head).Angle())
	} else {
		desired += geometry.Noise1D(v.Time*cfg.BotNoiseScale+h.phase, h.seed) * cfg.BotNoiseSway
	}

	h.threat = 0
	if dist, toward, ok := v.nearestBody(s, cfg.BotRepelDistance, cfg.BotSegmentSkip); ok {
		danger := 1 - dist/cfg.BotRepelDistance
		h.threat = math.Pow(danger, cfg.BotRepelExponent)
		desired += cfg.BotRepelWeight * cfg.BotAggression * h.threat * geometry.AngleDelta(desired, toward+math.Pi)
	}

	edge := cfg.BotEdgeBuffer()
	wall := v.Boundary.Radius
	if d := head.Len(); d > edge && wall > edge {
		t := (d - edge) / (wall - edge)
		desired = geometry.LerpAngle(desired, head.Mul(-1).Angle(), t*cfg.BotEdgeForce)
	}

	maxTurn := cfg.BotTurnSpeed * dt
	h.heading = geometry.WrapAngle(h.heading + geometry.Clamp(geometry.AngleDelta(h.heading, desired), -maxTurn, maxTurn))

	return Target{Direction: geometry.FromAngle(h.heading)}
}
