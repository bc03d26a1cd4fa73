package geometry

import (
	"math"
	"math/rand/v2"
)

// Gauss draws from a normal distribution using the Box-Muller transform.
func Gauss(r *rand.Rand, mean, stdDev float64) float64 {
	u, v := 0.0, 0.0
	for u == 0 {
		u = r.Float64()
	}
	for v == 0 {
		v = r.Float64()
	}
	z := math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
	return z*stdDev + mean
}

// SignedGauss draws a Gaussian magnitude and gives it a random sign.
func SignedGauss(r *rand.Rand, mean, stdDev float64) float64 {
	value := math.Abs(Gauss(r, mean, stdDev))
	if r.Float64() < 0.5 {
		return -value
	}
	return value
}

// RandInt returns an integer in [min, max], both ends included.
func RandInt(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min+1)
}
