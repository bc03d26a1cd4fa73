package evolution

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		fitness []float64
		want    Stats
	}{
		{"Empty", nil, Stats{Generation: 3}},
		{"Single", []float64{20}, Stats{Generation: 3, Size: 1, Best: 20, Worst: 20, Mean: 20, Median: 20}},
		{"Odd sample", []float64{30, 20, 40, 20, 40}, Stats{Generation: 3, Size: 5, Best: 40, Worst: 20, Mean: 30, StdDev: math.Sqrt(100), Median: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(3, tt.fitness)
			if got.Generation != tt.want.Generation || got.Size != tt.want.Size {
				t.Errorf("Summarize() = %+v; want %+v", got, tt.want)
			}
			pairs := [][2]float64{
				{got.Best, tt.want.Best},
				{got.Worst, tt.want.Worst},
				{got.Mean, tt.want.Mean},
				{got.StdDev, tt.want.StdDev},
				{got.Median, tt.want.Median},
			}
			for _, p := range pairs {
				if !floatEquals(p[0], p[1]) {
					t.Errorf("Summarize() = %+v; want %+v", got, tt.want)
					break
				}
			}
		})
	}

	t.Run("Input is not reordered", func(t *testing.T) {
		in := []float64{3, 1, 2}
		Summarize(0, in)
		if in[0] != 3 || in[1] != 1 || in[2] != 2 {
			t.Errorf("Summarize sorted its input: %v", in)
		}
	})
}
