package simulation

import (
	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// HitKind is what a sensor ray ran into first.
type HitKind int

const (
	HitNone HitKind = iota
	HitWall
	HitFood
	HitBody
)

func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitFood:
		return "food"
	case HitBody:
		return "body"
	default:
		return "none"
	}
}

// SensorHit is the reading of one ray. Distance equals the sight distance on a miss.
type SensorHit struct {
	Angle    float64 // relative to the serpent's heading
	Kind     HitKind
	Distance float64
}

// Signal turns a reading into a network input: closer is stronger, food is positive,
// walls and bodies are negative and nothing is zero.
func (h SensorHit) Signal(sight float64) float64 {
	strength := 1 - geometry.Clamp(h.Distance/sight, 0, 1)
	switch h.Kind {
	case HitFood:
		return strength
	case HitWall, HitBody:
		return -strength
	default:
		return 0
	}
}

type bodyCandidate struct {
	pos    geometry.Vector2D
	radius float64
}

// castRays fills hits with one reading per angle in the fan around s's heading.
// hits must have the same length as angles.
func castRays(s *Serpent, v *View, angles []float64, sight float64, hits []SensorHit) {
	head := s.Head()

	var orbs []*Orb
	for _, o := range v.Orbs {
		if o.removed {
			continue
		}
		reach := sight + o.Radius
		if o.Pos.DistanceSquaredTo(head) <= reach*reach {
			orbs = append(orbs, o)
		}
	}

	var bodies []bodyCandidate
	collect := func(other *Serpent, _ int, pos geometry.Vector2D) {
		if other == s {
			return
		}
		r := other.Radius()
		reach := sight + r
		if pos.DistanceSquaredTo(head) <= reach*reach {
			bodies = append(bodies, bodyCandidate{pos: pos, radius: r})
		}
	}
	if v.bodies != nil {
		v.bodies.forEachNear(head, sight+v.bodyRadius, collect)
	} else {
		for _, other := range v.serpents() {
			if other.Dead {
				continue
			}
			for i, pos := range other.Segments {
				collect(other, i, pos)
			}
		}
	}

	for i, a := range angles {
		dir := geometry.FromAngle(s.Heading + a)
		hit := SensorHit{Angle: a, Kind: HitNone, Distance: sight}

		if d := geometry.RayExitCircle(head, dir, v.Boundary.Radius); d < hit.Distance {
			hit.Kind, hit.Distance = HitWall, d
		}
		for _, o := range orbs {
			if d, ok := geometry.RayCircle(head, dir, o.Pos, o.Radius); ok && d < hit.Distance {
				hit.Kind, hit.Distance = HitFood, d
			}
		}
		for _, b := range bodies {
			if d, ok := geometry.RayCircle(head, dir, b.pos, b.radius); ok && d < hit.Distance {
				hit.Kind, hit.Distance = HitBody, d
			}
		}
		hits[i] = hit
	}
}
