package geometry

import "math"

// WrapAngle brings an angle into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleDelta is the shortest signed rotation that takes a onto b.
// The result never exceeds Pi in absolute value.
func AngleDelta(a, b float64) float64 {
	return WrapAngle(b - a)
}

// LerpAngle moves a towards b along the shortest arc by the fraction t.
// The result is not wrapped: headings stay continuous between ticks.
func LerpAngle(a, b, t float64) float64 {
	return a + AngleDelta(a, b)*t
}

// Lerp is the scalar linear interpolation a + t*(b-a).
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// GenerateAngles spreads n angles evenly over [-Pi/2, Pi/2].
// A single angle points straight ahead.
func GenerateAngles(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	angles := make([]float64, n)
	start, end := -math.Pi/2, math.Pi/2
	interval := (end - start) / float64(n-1)
	for i := range angles {
		angles[i] = start + float64(i)*interval
	}
	return angles
}
