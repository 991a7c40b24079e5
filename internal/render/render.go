package render

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"girih/internal/construction"
	"girih/pkg/geometry"
)

// ErrSymmetry is returned for a symmetry order below one.
var ErrSymmetry = errors.New("symmetry order must be at least 1")

// Layers selects what Render draws.
type Layers int

const (
	LayerConstruction Layers = 1 << iota // Dashed guides and labelled point markers
	LayerPattern                         // Filled shapes and outlines

	LayerBoth = LayerConstruction | LayerPattern
)

func (l Layers) String() string {
	switch l {
	case LayerConstruction:
		return "construction"
	case LayerPattern:
		return "pattern"
	case LayerBoth:
		return "both"
	default:
		return "Layers(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLayers converts "construction", "pattern" or "both" to Layers.
func ParseLayers(s string) (Layers, error) {
	switch s {
	case "construction":
		return LayerConstruction, nil
	case "pattern":
		return LayerPattern, nil
	case "both", "":
		return LayerBoth, nil
	default:
		return 0, fmt.Errorf("unknown layers %q (want construction, pattern or both)", s)
	}
}

// Render clears the surface and draws the selected layers, construction
// underneath the pattern.
func Render(s Surface, reg *construction.Registry, n int, layers Layers) error {
	if err := check(reg, n); err != nil {
		return err
	}
	s.Clear()
	if layers&LayerConstruction != 0 {
		drawConstruction(s, reg, n)
	}
	if layers&LayerPattern != 0 {
		drawPattern(s, reg, n)
	}
	return nil
}

// Construction clears the surface and draws the construction layer: every
// segment and circle in each of the n sectors as a dashed guide, then every
// point once, unrotated, as a marker labelled with its index.
func Construction(s Surface, reg *construction.Registry, n int) error {
	if err := check(reg, n); err != nil {
		return err
	}
	s.Clear()
	drawConstruction(s, reg, n)
	return nil
}

// Pattern draws the pattern layer over whatever the surface holds. Shapes
// are filled in every sector before any outline is stroked, and all grout
// strokes go down before any inner stroke.
func Pattern(s Surface, reg *construction.Registry, n int) error {
	if err := check(reg, n); err != nil {
		return err
	}
	drawPattern(s, reg, n)
	return nil
}

func check(reg *construction.Registry, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrSymmetry, n)
	}
	return reg.Validate()
}

// sectorAngle returns the rotation of sector k of n.
func sectorAngle(k, n int) float64 {
	return float64(k) * 2 * math.Pi / float64(n)
}

// rotated resolves indices and rotates them by angle about the registry
// center. Indices must have been validated.
func rotated(reg *construction.Registry, idx []int, angle float64) []geometry.Point {
	out := make([]geometry.Point, len(idx))
	for i, j := range idx {
		out[i] = geometry.Rotate(reg.At(j), reg.Center, angle)
	}
	return out
}

func drawConstruction(s Surface, reg *construction.Registry, n int) {
	st := reg.Style

	s.Save()
	s.SetStrokeColor(st.GuideColor)
	s.SetLineWidth(st.GuideWidth)
	s.SetLineDash(st.GuideDash)
	for k := 0; k < n; k++ {
		angle := sectorAngle(k, n)
		for _, seg := range reg.Segments {
			p := rotated(reg, []int{seg.A, seg.B}, angle)
			s.BeginPath()
			s.MoveTo(p[0].X, p[0].Y)
			s.LineTo(p[1].X, p[1].Y)
			s.Stroke()
		}
		for _, c := range reg.Circles {
			p := rotated(reg, []int{c.Center, c.Edge}, angle)
			s.BeginPath()
			s.Arc(p[0].X, p[0].Y, geometry.Distance(p[0], p[1]), 0, 2*math.Pi)
			s.Stroke()
		}
	}
	s.Restore()

	// Markers are drawn once: labels identify stored points, not their images.
	s.Save()
	s.SetLineDash(nil)
	s.SetFillColor(st.MarkerColor)
	s.SetFont(st.FontSize)
	for i, pt := range reg.Points {
		s.BeginPath()
		s.Arc(pt.X, pt.Y, st.MarkerRadius, 0, 2*math.Pi)
		s.Fill()
		s.FillText(strconv.Itoa(i), pt.X+st.LabelOffset, pt.Y+st.LabelOffset)
	}
	s.Restore()
}

func drawPattern(s Surface, reg *construction.Registry, n int) {
	st := reg.Style

	s.Save()
	s.SetLineDash(nil)

	// Fills in every sector
	for k := 0; k < n; k++ {
		angle := sectorAngle(k, n)
		for _, sh := range reg.Shapes {
			tracePolygon(s, rotated(reg, sh.Points, angle))
			s.SetFillColor(sh.Color)
			s.Fill()
		}
	}

	// Then per sector, each outline gets grout underneath and its inner
	// stroke on top.
	for k := 0; k < n; k++ {
		angle := sectorAngle(k, n)
		for _, ln := range reg.Lines {
			tracePolygon(s, rotated(reg, ln.Points, angle))
			s.SetStrokeColor(st.GroutColor)
			s.SetLineWidth(st.GroutWidth)
			s.Stroke()
			s.SetStrokeColor(ln.Color)
			s.SetLineWidth(st.InnerWidth)
			s.Stroke()
		}
	}

	s.Restore()
}
