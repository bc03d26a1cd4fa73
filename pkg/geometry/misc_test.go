package geometry

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestRayCircle(t *testing.T) {
	origin := Vector2D{0, 0}
	east := Vector2D{1, 0}

	tests := []struct {
		name    string
		center  Vector2D
		radius  float64
		wantHit bool
		want    float64
	}{
		{"Straight ahead", Vector2D{10, 0}, 2, true, 8},
		{"Behind", Vector2D{-10, 0}, 2, false, 0},
		{"Off to the side", Vector2D{10, 5}, 2, false, 0},
		{"Grazing", Vector2D{10, 2}, 2, true, 10},
		{"Origin inside", Vector2D{1, 0}, 2, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := RayCircle(origin, east, tt.center, tt.radius)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v; want %v", hit, tt.wantHit)
			}
			if hit && !floatEquals(got, tt.want) {
				t.Errorf("distance = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestRayExitCircle(t *testing.T) {
	if got := RayExitCircle(Vector2D{0, 0}, Vector2D{1, 0}, 100); !floatEquals(got, 100) {
		t.Errorf("exit from centre = %v; want 100", got)
	}
	if got := RayExitCircle(Vector2D{50, 0}, Vector2D{-1, 0}, 100); !floatEquals(got, 150) {
		t.Errorf("exit backwards = %v; want 150", got)
	}
	if got := RayExitCircle(Vector2D{200, 0}, Vector2D{1, 0}, 100); got != 0 {
		t.Errorf("exit from outside = %v; want 0", got)
	}
}

func TestNoise1D(t *testing.T) {
	for x := -10.0; x < 10; x += 0.13 {
		v := Noise1D(x, 42)
		if v < -1 || v > 1 {
			t.Fatalf("Noise1D(%v) = %v; out of [-1, 1]", x, v)
		}
		if v != Noise1D(x, 42) {
			t.Fatalf("Noise1D(%v) is not repeatable", x)
		}
	}
	// Lattice points are exact hash values and the curve is continuous between them.
	a := Noise1D(3.999999, 7)
	b := Noise1D(4, 7)
	if math.Abs(a-b) > 1e-3 {
		t.Errorf("Noise1D is discontinuous at a lattice point: %v vs %v", a, b)
	}
}

func TestSplines(t *testing.T) {
	p0, p1, p2, p3 := Vector2D{0, 0}, Vector2D{10, 0}, Vector2D{20, 0}, Vector2D{30, 0}
	c1, c2 := CatmullRomToBezier(p0, p1, p2, p3)
	if !c1.Eq(Vector2D{10 + 20.0/6, 0}) || !c2.Eq(Vector2D{20 - 20.0/6, 0}) {
		t.Errorf("control points = %v, %v", c1, c2)
	}
	if got := CubicBezier(p1, c1, c2, p2, 0); !got.Eq(p1) {
		t.Errorf("curve start = %v; want %v", got, p1)
	}
	if got := CubicBezier(p1, c1, c2, p2, 1); !got.Eq(p2) {
		t.Errorf("curve end = %v; want %v", got, p2)
	}

	path := SmoothPath([]Vector2D{p0, p1, p2, p3}, 4)
	if len(path) != 13 {
		t.Fatalf("SmoothPath length = %d; want 13", len(path))
	}
	if !path[0].Eq(p0) || !path[len(path)-1].Eq(p3) {
		t.Errorf("SmoothPath endpoints = %v, %v", path[0], path[len(path)-1])
	}
}

func TestRandomHelpers(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 1000; i++ {
		if v := RandInt(r, 5, 20); v < 5 || v > 20 {
			t.Fatalf("RandInt out of range: %d", v)
		}
	}

	sum := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		sum += Gauss(r, 3, 1)
	}
	if mean := sum / n; math.Abs(mean-3) > 0.05 {
		t.Errorf("Gauss mean = %v; want ~3", mean)
	}
}
