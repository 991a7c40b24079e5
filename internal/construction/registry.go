// Package construction builds the point registry of a pattern by executing
// construction instructions.
package construction

import (
	"errors"
	"fmt"
	"image/color"

	"girih/pkg/geometry"
)

// ErrPointIndex is returned when an instruction or primitive references a
// point that does not exist yet.
var ErrPointIndex = errors.New("point index out of range")

// Point is a registry entry. Points never move once created; everything
// else refers to them by index.
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Round  int     `json:"round"`            // Round in which the point was created
	Source string  `json:"source,omitempty"` // Instruction that created it, if any
}

// Coords returns the point's location.
func (p Point) Coords() geometry.Point {
	return geometry.Pt(p.X, p.Y)
}

// Segment is a construction guide between two points. A-B and B-A describe
// the same segment.
type Segment struct {
	A, B int
}

// Same reports whether s and o join the same pair of points.
func (s Segment) Same(o Segment) bool {
	return (s.A == o.A && s.B == o.B) || (s.A == o.B && s.B == o.A)
}

// Circle is a construction circle centred on Center and passing through
// Edge. Its radius is resolved from the registry whenever it is needed.
type Circle struct {
	Center, Edge int
}

// PatternLine is an outline through Points, stroked in Color over a grout
// line.
type PatternLine struct {
	Points []int
	Color  color.RGBA
}

// PatternShape is a polygon through Points, filled with Color.
type PatternShape struct {
	Points []int
	Color  color.RGBA
}

// Registry holds everything a program constructed. It is a plain value
// owned by whoever built it; renderers only read it.
type Registry struct {
	Center geometry.Point // Rotation center for symmetry, the canvas middle
	Size   float64        // Pattern size; hexagons have radius Size/2
	Style  Style

	Points   []Point
	Segments []Segment
	Circles  []Circle
	Lines    []PatternLine
	Shapes   []PatternShape

	Rounds int // Number of completed rounds
}

// Coords resolves a point index to its location.
func (r *Registry) Coords(i int) (geometry.Point, error) {
	if i < 0 || i >= len(r.Points) {
		return geometry.Point{}, fmt.Errorf("%w: %d (have %d points)", ErrPointIndex, i, len(r.Points))
	}
	return r.Points[i].Coords(), nil
}

// At returns the location of point i. The index must be valid; use Validate
// or Coords when that is not already known.
func (r *Registry) At(i int) geometry.Point {
	return r.Points[i].Coords()
}

// CoordsAll resolves a list of indices.
func (r *Registry) CoordsAll(idx []int) ([]geometry.Point, error) {
	out := make([]geometry.Point, len(idx))
	for k, i := range idx {
		p, err := r.Coords(i)
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}

// Radius returns the current radius of a construction circle.
func (r *Registry) Radius(c Circle) (float64, error) {
	center, err := r.Coords(c.Center)
	if err != nil {
		return 0, err
	}
	edge, err := r.Coords(c.Edge)
	if err != nil {
		return 0, err
	}
	return geometry.Distance(center, edge), nil
}

// Validate checks that every stored index refers to an existing point.
func (r *Registry) Validate() error {
	check := func(kind string, n int, idx ...int) error {
		for _, i := range idx {
			if i < 0 || i >= len(r.Points) {
				return fmt.Errorf("%s %d: %w: %d (have %d points)", kind, n, ErrPointIndex, i, len(r.Points))
			}
		}
		return nil
	}
	for n, s := range r.Segments {
		if err := check("segment", n, s.A, s.B); err != nil {
			return err
		}
	}
	for n, c := range r.Circles {
		if err := check("circle", n, c.Center, c.Edge); err != nil {
			return err
		}
	}
	for n, l := range r.Lines {
		if err := check("line", n, l.Points...); err != nil {
			return err
		}
	}
	for n, s := range r.Shapes {
		if err := check("shape", n, s.Points...); err != nil {
			return err
		}
	}
	return nil
}

// Locations returns the coordinates of every point, in index order.
func (r *Registry) Locations() []geometry.Point {
	out := make([]geometry.Point, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Coords()
	}
	return out
}

// Bounds returns the bounding box of all points.
func (r *Registry) Bounds() geometry.Rect {
	return geometry.BoundingBox(r.Locations())
}
