package client

import (
	"sync"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
)

var _ simulation.PointerInput = (*Pointer)(nil)

// Pointer is written by the ebiten goroutine and read by the world actor.
type Pointer struct {
	mu     sync.RWMutex
	offset geometry.Vector2D
	boost  bool
}

// Set records the pointer offset from the player's head, in world units.
func (p *Pointer) Set(offset geometry.Vector2D, boost bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offset = offset
	p.boost = boost
}

func (p *Pointer) Pointer() geometry.Vector2D {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.offset
}

func (p *Pointer) Boosting() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.boost
}
