package geometry

// CatmullRomToBezier converts the Catmull-Rom span p1->p2 (with neighbours p0 and p3)
// into the two inner control points of the equivalent cubic Bezier curve.
func CatmullRomToBezier(p0, p1, p2, p3 Vector2D) (Vector2D, Vector2D) {
	bp1 := Vector2D{
		X: p1.X + (p2.X-p0.X)/6,
		Y: p1.Y + (p2.Y-p0.Y)/6,
	}
	bp2 := Vector2D{
		X: p2.X - (p3.X-p1.X)/6,
		Y: p2.Y - (p3.Y-p1.Y)/6,
	}
	return bp1, bp2
}

// CubicBezier evaluates the curve p0, c1, c2, p3 at t in [0, 1].
func CubicBezier(p0, c1, c2, p3 Vector2D, t float64) Vector2D {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Vector2D{
		X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
	}
}

// SmoothPath samples a Catmull-Rom curve through points, steps samples per span.
// End points are clamped, so the curve starts at points[0] and ends at the last point.
func SmoothPath(points []Vector2D, steps int) []Vector2D {
	n := len(points)
	if n < 2 || steps < 1 {
		return append([]Vector2D(nil), points...)
	}
	out := make([]Vector2D, 0, (n-1)*steps+1)
	out = append(out, points[0])
	for i := 0; i < n-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, n-1)]
		c1, c2 := CatmullRomToBezier(p0, p1, p2, p3)
		for s := 1; s <= steps; s++ {
			out = append(out, CubicBezier(p1, c1, c2, p2, float64(s)/float64(steps)))
		}
	}
	return out
}
