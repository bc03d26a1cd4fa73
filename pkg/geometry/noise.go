package geometry

import "math"

// latticeValue hashes an integer lattice coordinate into (-1, 1].
func latticeValue(n, seed int64) float64 {
	x := uint32(n + seed)
	x = (x << 13) ^ x
	v := (x*(x*x*15731+789221) + 1376312589) & 0x7fffffff
	return 1.0 - float64(v)/1073741824.0
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Noise1D is smooth value noise in (-1, 1]. The same (x, seed) always gives the same value.
func Noise1D(x float64, seed int64) float64 {
	x0 := math.Floor(x)
	t := x - x0
	n0 := latticeValue(int64(x0), seed)
	n1 := latticeValue(int64(x0)+1, seed)
	return Lerp(n0, n1, fade(t))
}

// noise2DOffset decorrelates the Y channel of Noise2D from the X channel.
const noise2DOffset = 32758

// Noise2D returns two decorrelated Noise1D channels as a vector.
func Noise2D(x float64, seed int64) Vector2D {
	return Vector2D{
		X: Noise1D(x, seed),
		Y: Noise1D(x+noise2DOffset, seed),
	}
}
