package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float64 comparisons across the simulation.
const Epsilon = 1e-9

// Vector2D is a point or a direction in world space.
// Fields are public: segments, orbs and targets are plain data that renderers read directly.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the origin, which is also the centre of the world.
var Zero = Vector2D{}

// FromAngle returns the unit vector pointing along theta (radians).
func FromAngle(theta float64) Vector2D {
	return Vector2D{X: math.Cos(theta), Y: math.Sin(theta)}
}

// String implements fmt.Stringer.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// LenSqr is the squared magnitude. Use it for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len is the magnitude of the vector.
func (v Vector2D) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector in the same direction.
// A zero-length vector normalizes to the zero vector.
func (v Vector2D) Normalize() Vector2D {
	return v.NormalizeTo(1)
}

// NormalizeTo rescales the vector to the given length.
// A zero-length vector stays the zero vector whatever the requested length.
func (v Vector2D) NormalizeTo(length float64) Vector2D {
	l := v.Len()
	if l == 0 {
		return Vector2D{}
	}
	scale := length / l
	return Vector2D{v.X * scale, v.Y * scale}
}

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Angle returns atan2(Y, X), in [-Pi, Pi].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Eq checks if two vectors are approximately equal using Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// ClampToCircle pulls v back inside the circle of the given radius centred on the origin.
func (v Vector2D) ClampToCircle(radius float64) Vector2D {
	if v.LenSqr() <= radius*radius {
		return v
	}
	return v.NormalizeTo(radius)
}
