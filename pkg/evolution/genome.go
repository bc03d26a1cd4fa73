package evolution

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
)

var _ simulation.Genome = (*Genome)(nil)

// Genome wraps a Network with the fitness it earned in the last match.
type Genome struct {
	net     *Network
	fitness float64
}

func NewGenome(net *Network) *Genome {
	return &Genome{net: net}
}

func (g *Genome) Network() *Network { return g.net }

// Propagate returns nil when the input arity is wrong, which the simulation treats as a zero output.
func (g *Genome) Propagate(inputs []float64) []float64 {
	out, err := g.net.Forward(inputs)
	if err != nil {
		return nil
	}
	return out
}

func (g *Genome) Fitness() float64     { return g.fitness }
func (g *Genome) SetFitness(f float64) { g.fitness = f }

// clone copies the network and resets the fitness.
func (g *Genome) clone() *Genome {
	return &Genome{net: g.net.Clone()}
}

// crossover picks every parameter from either parent with equal odds.
// Both parents must share a layout.
func crossover(a, b *Genome, r *rand.Rand) *Genome {
	child := a.clone()
	other := b.net.params()
	for i, p := range child.net.params() {
		for j := range p {
			if r.IntN(2) == 1 {
				p[j] = other[i][j]
			}
		}
	}
	return child
}

// mutate nudges each parameter with probability rate by a Gaussian of the given deviation.
func mutate(g *Genome, rate, stdDev float64, r *rand.Rand) {
	for _, p := range g.net.params() {
		for j := range p {
			if r.Float64() < rate {
				p[j] += r.NormFloat64() * stdDev
			}
		}
	}
}
