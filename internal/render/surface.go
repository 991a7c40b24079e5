// Package render draws a construction registry onto a Surface, replicated
// under N-fold rotational symmetry about the registry center.
package render

import (
	"image/color"

	"girih/pkg/geometry"
)

// Surface is the drawing capability the renderer needs. It follows the
// usual canvas model: a current path is built with MoveTo, LineTo and Arc and
// then filled or stroked with the current state. Save and Restore push and
// pop that state.
type Surface interface {
	Size() (width, height int)
	Clear()

	Save()
	Restore()

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(cx, cy, r, start, end float64)
	ClosePath()

	Fill()
	Stroke()
	FillText(text string, x, y float64)

	SetFillColor(c color.RGBA)
	SetStrokeColor(c color.RGBA)
	SetLineWidth(w float64)
	SetLineDash(dash []float64) // nil or empty means solid
	SetFont(size float64)
}

// tracePolygon replaces the current path with a closed polygon through pts.
func tracePolygon(s Surface, pts []geometry.Point) {
	s.BeginPath()
	for i, p := range pts {
		if i == 0 {
			s.MoveTo(p.X, p.Y)
			continue
		}
		s.LineTo(p.X, p.Y)
	}
	s.ClosePath()
}
