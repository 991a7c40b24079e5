package construction

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"gonum.org/v1/gonum/floats/scalar"

	"girih/pkg/geometry"
)

var (
	// ErrDegenerate is returned when a construction needs two distinct points
	// and gets the same location twice.
	ErrDegenerate = errors.New("degenerate construction")
	// ErrHexVariant is returned for a hexagon variant outside hex1..hex4.
	ErrHexVariant = errors.New("unknown hexagon variant")
)

// Builder grows a Registry. It is not safe for concurrent use.
type Builder struct {
	reg    *Registry
	opts   Options
	log    *log.Logger
	round  int
	source string // instruction currently executing
}

// NewBuilder returns a Builder with an empty registry centred on the canvas.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		reg: &Registry{
			Center: geometry.Pt(float64(opts.Width)/2, float64(opts.Height)/2),
			Size:   opts.Size,
			Style:  opts.Style,
		},
		opts: opts,
		log:  opts.logger(),
	}
}

// Registry returns the registry being built.
func (b *Builder) Registry() *Registry {
	return b.reg
}

// Round returns the current round number.
func (b *Builder) Round() int {
	return b.round
}

// NextRound closes the current round.
func (b *Builder) NextRound() {
	b.round++
	b.reg.Rounds = b.round
}

// AddPoint appends a point stamped with the current round and returns its
// index.
func (b *Builder) AddPoint(x, y float64) int {
	b.reg.Points = append(b.reg.Points, Point{
		X:      x,
		Y:      y,
		Round:  b.round,
		Source: b.source,
	})
	return len(b.reg.Points) - 1
}

// AddRelativePoint adds a point dx, dy half pattern sizes away from the
// center.
func (b *Builder) AddRelativePoint(dx, dy int) int {
	half := b.opts.Size / 2
	c := b.reg.Center
	return b.AddPoint(c.X+float64(dx)*half, c.Y+float64(dy)*half)
}

// AddConstructionSegment adds a guide segment between points a and b.
func (b *Builder) AddConstructionSegment(a, c int) error {
	if err := b.checkIndices(a, c); err != nil {
		return err
	}
	b.addSegment(a, c)
	return nil
}

// AddConstructionCircle adds a guide circle centred on center through edge.
func (b *Builder) AddConstructionCircle(center, edge int) error {
	if err := b.checkIndices(center, edge); err != nil {
		return err
	}
	b.addCircle(center, edge)
	return nil
}

// AddPatternLine adds an outline. A nil colour uses the style's inner colour.
func (b *Builder) AddPatternLine(points []int, c *color.RGBA) error {
	if err := b.checkIndices(points...); err != nil {
		return err
	}
	col := b.opts.Style.InnerColor
	if c != nil {
		col = *c
	}
	b.reg.Lines = append(b.reg.Lines, PatternLine{
		Points: append([]int(nil), points...),
		Color:  col,
	})
	return nil
}

// AddPatternShape adds a filled shape. A nil colour takes the current round's
// palette colour, so all auto-coloured shapes of one round match.
func (b *Builder) AddPatternShape(points []int, c *color.RGBA) error {
	if err := b.checkIndices(points...); err != nil {
		return err
	}
	col := b.RoundColor()
	if c != nil {
		col = *c
	}
	b.reg.Shapes = append(b.reg.Shapes, PatternShape{
		Points: append([]int(nil), points...),
		Color:  col,
	})
	return nil
}

// RoundColor returns the palette colour of the current round.
func (b *Builder) RoundColor() color.RGBA {
	if len(b.opts.Palette) == 0 {
		return b.opts.Style.ShapeColor
	}
	return b.opts.Palette[b.round%len(b.opts.Palette)]
}

// AddLineIntersect adds the crossing of lines a-c and d-e, unless it
// coincides with one of the four input points. It returns the number of
// points added.
func (b *Builder) AddLineIntersect(a, c, d, e int) (int, error) {
	pts, err := b.resolve(a, c, d, e)
	if err != nil {
		return 0, err
	}
	if b.opts.IntersectGuides {
		b.addSegment(a, c)
		b.addSegment(d, e)
	}
	return b.materialize(geometry.LineIntersection(pts[0], pts[1], pts[2], pts[3]), pts), nil
}

// AddCircleIntersect adds the intersections of line a-c with the circle
// centred on center through edge, skipping any that coincide with an input
// point. It returns the number of points added.
func (b *Builder) AddCircleIntersect(a, c, center, edge int) (int, error) {
	pts, err := b.resolve(a, c, center, edge)
	if err != nil {
		return 0, err
	}
	if b.opts.IntersectGuides {
		b.addSegment(a, c)
		b.addCircle(center, edge)
	}
	return b.materialize(geometry.LineCircleIntersections(pts[0], pts[1], pts[2], pts[3]), pts), nil
}

// AddSymmetricPoint adds the mirror image of point p across the line a-c.
func (b *Builder) AddSymmetricPoint(a, c, p int) (int, error) {
	pts, err := b.resolve(a, c, p)
	if err != nil {
		return 0, err
	}
	if geometry.Coincident(pts[0], pts[1]) {
		return 0, fmt.Errorf("%w: mirror axis %d-%d has no direction", ErrDegenerate, a, c)
	}
	m := geometry.Reflect(pts[0], pts[1], pts[2])
	return b.AddPoint(m.X, m.Y), nil
}

func (b *Builder) materialize(found, inputs []geometry.Point) int {
	added := 0
	for _, p := range found {
		if geometry.NearAny(p, inputs, geometry.DefaultEpsilon) {
			continue
		}
		b.AddPoint(p.X, p.Y)
		added++
	}
	return added
}

// addSegment appends a segment whose indices are known to be valid.
func (b *Builder) addSegment(a, c int) {
	s := Segment{A: a, B: c}
	if b.opts.Dedup == DedupConstruction {
		for _, o := range b.reg.Segments {
			if o.Same(s) {
				return
			}
		}
	}
	b.reg.Segments = append(b.reg.Segments, s)
}

// addCircle appends a circle whose indices are known to be valid.
func (b *Builder) addCircle(center, edge int) {
	c := Circle{Center: center, Edge: edge}
	if b.opts.Dedup == DedupConstruction {
		r := geometry.Distance(b.reg.At(center), b.reg.At(edge))
		for _, o := range b.reg.Circles {
			if o.Center != center {
				continue
			}
			or := geometry.Distance(b.reg.At(o.Center), b.reg.At(o.Edge))
			if scalar.EqualWithinAbs(r, or, geometry.DefaultEpsilon) {
				return
			}
		}
	}
	b.reg.Circles = append(b.reg.Circles, c)
}

func (b *Builder) checkIndices(idx ...int) error {
	for _, i := range idx {
		if i < 0 || i >= len(b.reg.Points) {
			return fmt.Errorf("%w: %d (have %d points)", ErrPointIndex, i, len(b.reg.Points))
		}
	}
	return nil
}

func (b *Builder) resolve(idx ...int) ([]geometry.Point, error) {
	return b.reg.CoordsAll(idx)
}
