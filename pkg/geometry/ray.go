package geometry

import "math"

// RayCircle intersects the ray origin + t*dir (dir must be a unit vector, t >= 0) with a circle.
// It returns the distance to the first contact and true, or 0 and false on a miss.
// An origin already inside the circle touches it at distance 0.
func RayCircle(origin, dir, center Vector2D, radius float64) (float64, bool) {
	toCenter := center.Sub(origin)
	distSq := toCenter.LenSqr()
	rSq := radius * radius
	if distSq <= rSq {
		return 0, true
	}
	along := toCenter.Dot(dir)
	if along < 0 {
		return 0, false
	}
	perpSq := distSq - along*along
	if perpSq > rSq {
		return 0, false
	}
	return along - math.Sqrt(rSq-perpSq), true
}

// RayExitCircle is the distance along the ray at which it leaves a circle centred on
// the origin. An origin outside the circle returns 0.
func RayExitCircle(origin, dir Vector2D, radius float64) float64 {
	rSq := radius * radius
	oSq := origin.LenSqr()
	if oSq >= rSq {
		return 0
	}
	along := -origin.Dot(dir)
	perpSq := oSq - along*along
	return along + math.Sqrt(rSq-perpSq)
}
