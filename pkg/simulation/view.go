package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// View is the read-only picture of the world handed to steering strategies.
// Strategies must not mutate anything reachable from it.
type View struct {
	Player   *Serpent
	Bots     []*Serpent
	Orbs     []*Orb
	Boundary Boundary
	Time     float64 // simulated seconds since the match started

	bodies     *segmentGrid
	bodyRadius float64 // largest living radius when bodies was built
}

// NearestOrb returns the orb whose centre is closest to p, or nil when there are none.
func (v *View) NearestOrb(p geometry.Vector2D) *Orb {
	var nearest *Orb
	best := math.Inf(1)
	for _, o := range v.Orbs {
		if o.removed {
			continue
		}
		if d := o.Pos.DistanceSquaredTo(p); d < best {
			best = d
			nearest = o
		}
	}
	return nearest
}

// nearestBody finds the closest sampled segment of any other living serpent, measured
// to the edge of that serpent's body. Every skip-th segment is sampled. It reports the
// edge distance and the angle from me towards that segment when it is closer than limit.
func (v *View) nearestBody(me *Serpent, limit float64, skip int) (dist, angle float64, ok bool) {
	head := me.Head()
	dist = math.Inf(1)

	visit := func(s *Serpent, i int, pos geometry.Vector2D) {
		if s == me || i%skip != 0 {
			return
		}
		d := pos.DistanceTo(head) - s.Radius()
		if d < dist {
			dist = d
			angle = pos.Sub(head).Angle()
		}
	}

	if v.bodies != nil {
		v.bodies.forEachNear(head, limit+v.bodyRadius, visit)
	} else {
		for _, s := range v.serpents() {
			if s.Dead {
				continue
			}
			for i, pos := range s.Segments {
				visit(s, i, pos)
			}
		}
	}
	return dist, angle, dist < limit
}

// serpents lists the player followed by the bots.
func (v *View) serpents() []*Serpent {
	all := make([]*Serpent, 0, len(v.Bots)+1)
	if v.Player != nil {
		all = append(all, v.Player)
	}
	return append(all, v.Bots...)
}
