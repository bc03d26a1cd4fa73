package evolution

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the fitness of one finished generation.
type Stats struct {
	Generation int
	Size       int
	Best       float64
	Worst      float64
	Mean       float64
	StdDev     float64
	Median     float64
}

// Summarize computes the statistics of a fitness sample. An empty sample yields zero values.
func Summarize(generation int, fitness []float64) Stats {
	s := Stats{Generation: generation, Size: len(fitness)}
	if len(fitness) == 0 {
		return s
	}
	sorted := slices.Clone(fitness)
	slices.Sort(sorted)

	s.Best = floats.Max(sorted)
	s.Worst = floats.Min(sorted)
	if len(sorted) == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("generation %d: best %.1f | mean %.1f ± %.1f | median %.1f | worst %.1f (%d genomes)",
		s.Generation, s.Best, s.Mean, s.StdDev, s.Median, s.Worst, s.Size)
}
