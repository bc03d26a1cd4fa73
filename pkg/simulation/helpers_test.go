package simulation

import (
	"math"
	"sync"

	"github.com/lao-tseu-is-alive/go-slither/pkg/geometry"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= geometry.Epsilon
}

// constSteering always wants the same thing.
type constSteering struct {
	dir   geometry.Vector2D
	boost bool
}

func (c constSteering) Target(*Serpent, *View, float64) Target {
	return Target{Direction: c.dir, Boost: c.boost}
}

// fixedGenome returns the same outputs whatever it is shown.
type fixedGenome struct {
	out     []float64
	fitness float64
	calls   int
	inputs  []float64
}

func (f *fixedGenome) Propagate(inputs []float64) []float64 {
	f.calls++
	f.inputs = append(f.inputs[:0], inputs...)
	return append([]float64(nil), f.out...)
}
func (f *fixedGenome) Fitness() float64     { return f.fitness }
func (f *fixedGenome) SetFitness(v float64) { f.fitness = v }

type panickyGenome struct{ fixedGenome }

func (p *panickyGenome) Propagate([]float64) []float64 { panic("boom") }

// fakePopulation hands out fixedGenomes and counts evolutions.
type fakePopulation struct {
	genomes    []Genome
	generation int
	evolved    int
	size       int
}

func newFakePopulation(size int) *fakePopulation {
	p := &fakePopulation{size: size}
	p.breed()
	return p
}

func (p *fakePopulation) breed() {
	p.genomes = make([]Genome, p.size)
	for i := range p.genomes {
		p.genomes[i] = &fixedGenome{out: []float64{0, -1}}
	}
}

func (p *fakePopulation) Genomes() []Genome { return p.genomes }
func (p *fakePopulation) Generation() int   { return p.generation }
func (p *fakePopulation) Evolve() error {
	p.evolved++
	p.generation++
	p.breed()
	return nil
}

// recordingAudio remembers every cue.
type recordingAudio struct {
	mu     sync.Mutex
	played []string
}

func (r *recordingAudio) PlaySfx(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, name)
}

func (r *recordingAudio) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == name {
			n++
		}
	}
	return n
}

type brokenAudio struct{}

func (brokenAudio) PlaySfx(string) { panic("no sound card") }

// testConfig is a small deterministic world with no bots and no orbs.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.BotCount = 0
	cfg.OrbCount = 0
	return cfg
}

// lineSerpent lays a serpent out from head towards dir with the given gap between segments.
func lineSerpent(cfg *Config, head, dir geometry.Vector2D, gap float64, steering Steering) *Serpent {
	s := NewSerpent(cfg, head, Palette[0], steering)
	step := dir.NormalizeTo(gap)
	for i := range s.Segments {
		s.Segments[i] = head.Add(step.Mul(float64(i)))
	}
	return s
}

func emptyView(cfg *Config) *View {
	return &View{Boundary: Boundary{Radius: cfg.BoundaryRadius()}}
}
