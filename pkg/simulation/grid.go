package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// bodyRef points at one segment of a serpent. Positions are read live, so a query
// made after some serpents moved still sees where they are now.
type bodyRef struct {
	serpent *Serpent
	index   int
}

// segmentGrid is a spatial hash of serpent segments rebuilt once per tick.
type segmentGrid struct {
	cellSize float64
	slack    float64 // max distance a segment may have moved since the last rebuild
	cells    map[gridKey][]bodyRef
}

func newSegmentGrid(cellSize float64) *segmentGrid {
	return &segmentGrid{
		cellSize: math.Max(cellSize, 10),
		cells:    make(map[gridKey][]bodyRef),
	}
}

func (g *segmentGrid) cellOf(p geometry.Vector2D) gridKey {
	return gridKey{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// rebuild re-buckets every living serpent. Slices are truncated rather than dropped
// so their backing arrays are reused from tick to tick.
func (g *segmentGrid) rebuild(serpents []*Serpent, slack float64) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	g.slack = slack
	for _, s := range serpents {
		if s == nil || s.Dead {
			continue
		}
		for i, seg := range s.Segments {
			key := g.cellOf(seg)
			g.cells[key] = append(g.cells[key], bodyRef{serpent: s, index: i})
		}
	}
}

// forEachNear visits every live segment that may lie within radius of p.
// Callers still measure the exact distance.
func (g *segmentGrid) forEachNear(p geometry.Vector2D, radius float64, fn func(s *Serpent, index int, pos geometry.Vector2D)) {
	reach := radius + g.slack
	minKey := g.cellOf(geometry.Vector2D{X: p.X - reach, Y: p.Y - reach})
	maxKey := g.cellOf(geometry.Vector2D{X: p.X + reach, Y: p.Y + reach})

	for gx := minKey.x; gx <= maxKey.x; gx++ {
		for gy := minKey.y; gy <= maxKey.y; gy++ {
			refs, ok := g.cells[gridKey{x: gx, y: gy}]
			if !ok {
				continue
			}
			for _, ref := range refs {
				s := ref.serpent
				if s.Dead || ref.index >= len(s.Segments) {
					continue
				}
				fn(s, ref.index, s.Segments[ref.index])
			}
		}
	}
}
