package evolution

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"slices"

	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
)

var _ simulation.Population = (*Population)(nil)

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("invalid population options")

// Options tune the genetic algorithm.
type Options struct {
	Size           int
	Layout         []int // input, hidden..., output
	MutationRate   float64
	MutationStdDev float64
	EliteCount     int
	TournamentSize int
	Seed           uint64 // 0 picks a random seed
}

// OptionsFromConfig sizes the population to BotCount and shapes the networks for neural bots.
func OptionsFromConfig(cfg *simulation.Config) Options {
	layout := []int{cfg.NeuralInputs()}
	layout = append(layout, cfg.HiddenLayers...)
	layout = append(layout, cfg.NeuralOutputs())
	return Options{
		Size:           cfg.BotCount,
		Layout:         layout,
		MutationRate:   cfg.MutationRate,
		MutationStdDev: cfg.MutationStdDev,
		EliteCount:     cfg.EliteCount,
		TournamentSize: cfg.TournamentSize,
		Seed:           cfg.Seed,
	}
}

func (o Options) validate() error {
	switch {
	case o.Size < 1:
		return fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalidOptions, o.Size)
	case o.EliteCount < 0 || o.EliteCount > o.Size:
		return fmt.Errorf("%w: eliteCount %d outside [0, %d]", ErrInvalidOptions, o.EliteCount, o.Size)
	case o.TournamentSize < 1:
		return fmt.Errorf("%w: tournamentSize must be at least 1, got %d", ErrInvalidOptions, o.TournamentSize)
	case o.MutationRate < 0 || o.MutationRate > 1:
		return fmt.Errorf("%w: mutationRate %v outside [0, 1]", ErrInvalidOptions, o.MutationRate)
	case o.MutationStdDev < 0:
		return fmt.Errorf("%w: mutationStdDev cannot be negative", ErrInvalidOptions)
	}
	return nil
}

// Population is a generation of genomes bred with elitism, tournament selection,
// uniform crossover and Gaussian mutation.
type Population struct {
	opts       Options
	rng        *rand.Rand
	genomes    []*Genome
	generation int
	history    []Stats
}

// NewPopulation creates generation 0 with random networks.
func NewPopulation(opts Options) (*Population, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	p := &Population{opts: opts, rng: newRand(opts.Seed)}
	p.genomes = make([]*Genome, opts.Size)
	for i := range p.genomes {
		net, err := NewNetwork(opts.Layout, p.rng)
		if err != nil {
			return nil, err
		}
		p.genomes[i] = NewGenome(net)
	}
	return p, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x5eed))
}

// Genomes returns the current generation. The slice is freshly allocated.
func (p *Population) Genomes() []simulation.Genome {
	out := make([]simulation.Genome, len(p.genomes))
	for i, g := range p.genomes {
		out[i] = g
	}
	return out
}

func (p *Population) Generation() int { return p.generation }

// History lists the statistics of every finished generation, oldest first.
func (p *Population) History() []Stats { return slices.Clone(p.history) }

// Best returns the fittest genome of the current generation.
func (p *Population) Best() *Genome {
	best := p.genomes[0]
	for _, g := range p.genomes[1:] {
		if g.fitness > best.fitness {
			best = g
		}
	}
	return best
}

// Evolve records the finished generation's statistics and replaces it with its offspring.
func (p *Population) Evolve() error {
	fitness := make([]float64, len(p.genomes))
	for i, g := range p.genomes {
		fitness[i] = g.fitness
	}
	p.history = append(p.history, Summarize(p.generation, fitness))

	ranked := slices.Clone(p.genomes)
	slices.SortStableFunc(ranked, func(a, b *Genome) int {
		switch {
		case a.fitness > b.fitness:
			return -1
		case a.fitness < b.fitness:
			return 1
		}
		return 0
	})

	next := make([]*Genome, 0, len(ranked))
	for _, g := range ranked[:p.opts.EliteCount] {
		next = append(next, g.clone())
	}
	for len(next) < len(ranked) {
		a, b := p.tournament(ranked), p.tournament(ranked)
		if !a.net.sameLayout(b.net) {
			return fmt.Errorf("%w: parents have layouts %v and %v", ErrLayout, a.net.sizes, b.net.sizes)
		}
		child := crossover(a, b, p.rng)
		mutate(child, p.opts.MutationRate, p.opts.MutationStdDev, p.rng)
		next = append(next, child)
	}

	p.genomes = next
	p.generation++
	return nil
}

// tournament returns the fittest of TournamentSize genomes drawn with replacement.
func (p *Population) tournament(pool []*Genome) *Genome {
	best := pool[p.rng.IntN(len(pool))]
	for i := 1; i < p.opts.TournamentSize; i++ {
		if c := pool[p.rng.IntN(len(pool))]; c.fitness > best.fitness {
			best = c
		}
	}
	return best
}

type checkpoint struct {
	Generation int
	Layout     []int
	Params     [][][]float64 // genome, tensor, value
	History    []Stats
}

// Save writes the current generation with gob.
func (p *Population) Save(w io.Writer) error {
	cp := checkpoint{
		Generation: p.generation,
		Layout:     p.opts.Layout,
		Params:     make([][][]float64, len(p.genomes)),
		History:    p.history,
	}
	for i, g := range p.genomes {
		cp.Params[i] = g.net.params()
	}
	if err := gob.NewEncoder(w).Encode(cp); err != nil {
		return fmt.Errorf("failed to encode population: %w", err)
	}
	return nil
}

// LoadPopulation restores a saved generation. opts.Layout must match the saved layout;
// opts.Size is ignored in favour of the saved genome count.
func LoadPopulation(r io.Reader, opts Options) (*Population, error) {
	var cp checkpoint
	if err := gob.NewDecoder(r).Decode(&cp); err != nil {
		return nil, fmt.Errorf("failed to decode population: %w", err)
	}
	if !slices.Equal(cp.Layout, opts.Layout) {
		return nil, fmt.Errorf("%w: saved layout %v, want %v", ErrLayout, cp.Layout, opts.Layout)
	}
	opts.Size = len(cp.Params)
	if err := opts.validate(); err != nil {
		return nil, err
	}

	p := &Population{opts: opts, rng: newRand(opts.Seed), generation: cp.Generation, history: cp.History}
	for _, saved := range cp.Params {
		net, err := newZeroNetwork(opts.Layout)
		if err != nil {
			return nil, err
		}
		dst := net.params()
		if len(saved) != len(dst) {
			return nil, fmt.Errorf("%w: saved genome has %d tensors, want %d", ErrLayout, len(saved), len(dst))
		}
		for i := range dst {
			if len(saved[i]) != len(dst[i]) {
				return nil, fmt.Errorf("%w: saved tensor %d has %d values, want %d", ErrLayout, i, len(saved[i]), len(dst[i]))
			}
			copy(dst[i], saved[i])
		}
		p.genomes = append(p.genomes, NewGenome(net))
	}
	return p, nil
}

// LoadOrCreate restores the checkpoint at path, or starts a fresh population when path is
// empty or does not exist yet.
func LoadOrCreate(path string, opts Options) (*Population, error) {
	if path == "" {
		return NewPopulation(opts)
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewPopulation(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open population checkpoint: %w", err)
	}
	defer f.Close()
	return LoadPopulation(f, opts)
}

// SaveFile writes a checkpoint to path, replacing it only once the write has succeeded.
func (p *Population) SaveFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create population checkpoint: %w", err)
	}
	if err := p.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write population checkpoint: %w", err)
	}
	return os.Rename(tmp, path)
}
