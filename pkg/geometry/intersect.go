package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultEpsilon is the per-axis tolerance under which two points are
// considered the same location.
const DefaultEpsilon = 1e-6

// LineIntersection computes the point where the infinite lines through a,b and
// c,d cross. The result is empty when the lines are exactly parallel and holds
// a single point otherwise; that point may lie outside both segments.
func LineIntersection(a, b, c, d Point) []Point {
	denom := (a.X-b.X)*(c.Y-d.Y) - (a.Y-b.Y)*(c.X-d.X)
	if denom == 0 {
		return nil
	}

	t := ((a.X-c.X)*(c.Y-d.Y) - (a.Y-c.Y)*(c.X-d.X)) / denom

	return []Point{{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}}
}

// LineCircleIntersections intersects the infinite line through p1,p2 with the
// circle centred on center that passes through onCircle. It returns no point
// when the line misses, one point when it is tangent and two points otherwise,
// the root with the added square root first.
func LineCircleIntersections(p1, p2, center, onCircle Point) []Point {
	r := r2.Norm(r2.Sub(onCircle, center))
	cx, cy := center.X, center.Y

	// Vertical lines have no slope; solve (y-cy)^2 = r^2 - (x1-cx)^2 for y.
	if p1.X == p2.X {
		x := p1.X
		b := -2 * cy
		c := -(r * r) + cx*cx - 2*cx*x + x*x + cy*cy
		roots := quadraticRoots(1, b, c)
		out := make([]Point, len(roots))
		for i, y := range roots {
			out[i] = Point{X: x, Y: y}
		}
		return out
	}

	m := (p2.Y - p1.Y) / (p2.X - p1.X)
	n := p1.Y - m*p1.X

	a := 1 + m*m
	b := -cx*2 + m*(n-cy)*2
	c := cx*cx + (n-cy)*(n-cy) - r*r

	roots := quadraticRoots(a, b, c)
	out := make([]Point, len(roots))
	for i, x := range roots {
		out[i] = Point{X: x, Y: m*x + n}
	}
	return out
}

// quadraticRoots returns the real roots of a*x^2 + b*x + c, plus root first.
// A zero discriminant yields exactly one root.
func quadraticRoots(a, b, c float64) []float64 {
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// PerpendicularFoot returns the point on the infinite line through p1,p2 that
// is closest to center.
func PerpendicularFoot(center, p1, p2 Point) Point {
	if p1.X == p2.X {
		return Point{X: p1.X, Y: center.Y}
	}
	return foot(p1, p2, center)
}

// foot projects c onto the line through a,b. The result is NaN when a and b
// coincide.
func foot(a, b, c Point) Point {
	ab := r2.Sub(b, a)
	dot := r2.Dot(ab, r2.Sub(a, c))
	lengthSq := r2.Norm2(ab)
	return Point{
		X: a.X - dot*ab.X/lengthSq,
		Y: a.Y - dot*ab.Y/lengthSq,
	}
}

// Reflect mirrors c across the infinite line through a and b.
// The axis must not be degenerate (a != b).
func Reflect(a, b, c Point) Point {
	d := foot(a, b, c)
	return Point{
		X: d.X + (d.X - c.X),
		Y: d.Y + (d.Y - c.Y),
	}
}

// NearAny reports whether p lies within eps of any candidate on both axes.
func NearAny(p Point, candidates []Point, eps float64) bool {
	for _, q := range candidates {
		if scalar.EqualWithinAbs(p.X, q.X, eps) && scalar.EqualWithinAbs(p.Y, q.Y, eps) {
			return true
		}
	}
	return false
}

// Coincident reports whether a and b are the same location within
// DefaultEpsilon.
func Coincident(a, b Point) bool {
	return NearAny(a, []Point{b}, DefaultEpsilon)
}
