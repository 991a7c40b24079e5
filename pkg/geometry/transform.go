package geometry

import "gonum.org/v1/gonum/spatial/r2"

// Rotate turns p about center by angle radians. A zero angle, or p equal to
// center, returns p unchanged.
func Rotate(p, center Point, angle float64) Point {
	return r2.Rotate(p, angle, center)
}

// Midpoint returns the midpoint of two points.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a, b))
}
