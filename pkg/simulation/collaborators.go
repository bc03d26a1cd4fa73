package simulation

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

// Sound effect names sent to Audio.
const (
	SfxStart = "start"
	SfxEat   = "eat"
	SfxDeath = "death"
)

// PointerInput is read by the player's steering every tick. The simulation never writes to it.
type PointerInput interface {
	// Pointer is the pointer offset from the player's head, in world units.
	Pointer() geometry.Vector2D
	Boosting() bool
}

// Audio receives fire-and-forget sound cues.
type Audio interface {
	PlaySfx(name string)
}

// Genome is an evolvable steering function with a mutable fitness score.
type Genome interface {
	Propagate(inputs []float64) []float64
	Fitness() float64
	SetFitness(f float64)
}

// Population owns the genomes of the current generation and breeds the next one.
type Population interface {
	Genomes() []Genome
	Evolve() error
	Generation() int
}

type idleInput struct{}

func (idleInput) Pointer() geometry.Vector2D { return geometry.Zero }
func (idleInput) Boosting() bool             { return false }

type silentAudio struct{}

func (silentAudio) PlaySfx(string) {}

// playSfx isolates the simulation from a misbehaving audio backend.
func playSfx(a Audio, logger log.Logger, name string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("audio %q failed: %v", name, r)
		}
	}()
	a.PlaySfx(name)
}

// propagate calls a genome and discards outputs of the wrong arity or with non-finite values.
func propagate(g Genome, logger log.Logger, inputs []float64, outputs int) (out []float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("genome propagate failed: %v", r)
			out = make([]float64, outputs)
		}
	}()
	out = g.Propagate(inputs)
	if len(out) != outputs {
		logger.Warnf("genome returned %d outputs, want %d", len(out), outputs)
		return make([]float64, outputs)
	}
	for i, x := range out {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			logger.Warnf("genome output %d is %v", i, x)
			return make([]float64, outputs)
		}
	}
	return out
}

// evolve advances the population, turning a panic into an error.
func evolve(p Population) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("population evolve panicked: %v", r)
		}
	}()
	return p.Evolve()
}
