// Package raster implements a drawing surface on an RGBA image using the
// rasterx scan converter, with point labels set in Go Regular.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"girih/pkg/colorutil"
	"girih/pkg/geometry"
)

// arcStep is the largest angle, in radians, covered by one segment of a
// flattened arc.
const arcStep = math.Pi / 64

// state is the part of the surface that Save and Restore cover.
type state struct {
	fill     color.RGBA
	stroke   color.RGBA
	width    float64
	dash     []float64
	fontSize float64
}

type subpath struct {
	pts    []geometry.Point
	closed bool
}

// Surface draws into an *image.RGBA.
type Surface struct {
	img        *image.RGBA
	background color.RGBA

	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	font  *opentype.Font
	faces map[float64]font.Face

	st    state
	stack []state
	path  []subpath
}

// New returns a width x height surface cleared to background.
func New(width, height int, background color.RGBA) (*Surface, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	s := &Surface{
		img:        img,
		background: background,
		scanner:    scanner,
		filler:     rasterx.NewFiller(width, height, scanner),
		dasher:     rasterx.NewDasher(width, height, scanner),
		font:       fnt,
		faces:      make(map[float64]font.Face),
		st: state{
			fill:     colorutil.Black,
			stroke:   colorutil.Black,
			width:    1,
			fontSize: 12,
		},
	}
	s.Clear()
	return s, nil
}

// Image returns the image being drawn into.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the current image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear paints the whole image with the background colour and drops the
// current path.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	s.path = nil
}

func (s *Surface) Save() {
	st := s.st
	st.dash = append([]float64(nil), s.st.dash...)
	s.stack = append(s.stack, st)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
}

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, subpath{pts: []geometry.Point{geometry.Pt(x, y)}})
}

func (s *Surface) LineTo(x, y float64) {
	cur := s.current()
	if cur == nil {
		s.MoveTo(x, y)
		return
	}
	cur.pts = append(cur.pts, geometry.Pt(x, y))
}

// Arc adds a clockwise arc (in screen coordinates, y down) from angle start
// to angle end, joined to the current point by a straight line.
func (s *Surface) Arc(cx, cy, r, start, end float64) {
	sweep := end - start
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		s.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

func (s *Surface) ClosePath() {
	cur := s.current()
	if cur == nil {
		return
	}
	cur.closed = true
	// Further drawing starts a new subpath at the same point.
	s.path = append(s.path, subpath{pts: []geometry.Point{cur.pts[0]}})
}

// current returns the open subpath, or nil.
func (s *Surface) current() *subpath {
	if len(s.path) == 0 {
		return nil
	}
	cur := &s.path[len(s.path)-1]
	if cur.closed {
		return nil
	}
	return cur
}

// Fill fills the current path with the non-zero winding rule.
func (s *Surface) Fill() {
	s.filler.Clear()
	s.filler.SetWinding(true)
	s.replay(s.filler, true)
	s.filler.SetColor(s.st.fill)
	s.filler.Draw()
}

func (s *Surface) Stroke() {
	s.dasher.Clear()
	s.dasher.SetStroke(fixed.Int26_6(s.st.width*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Round, s.st.dash, 0)
	s.replay(s.dasher, false)
	s.dasher.SetColor(s.st.stroke)
	s.dasher.Draw()
}

// replay feeds the current path to a rasterizer. Filling closes every
// subpath; stroking closes only those closed with ClosePath.
func (s *Surface) replay(a rasterx.Adder, closeAll bool) {
	for _, sp := range s.path {
		if len(sp.pts) < 2 {
			continue
		}
		a.Start(rasterx.ToFixedP(sp.pts[0].X, sp.pts[0].Y))
		for _, p := range sp.pts[1:] {
			a.Line(rasterx.ToFixedP(p.X, p.Y))
		}
		a.Stop(closeAll || sp.closed)
	}
}

// FillText draws text with its baseline starting at x, y.
func (s *Surface) FillText(text string, x, y float64) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.st.fill),
		Face: s.face(s.st.fontSize),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}

func (s *Surface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Only a non-positive size fails; fall back to the default.
		f, _ = opentype.NewFace(s.font, &opentype.FaceOptions{Size: 12, DPI: 72})
	}
	s.faces[size] = f
	return f
}

func (s *Surface) SetFillColor(c color.RGBA)   { s.st.fill = c }
func (s *Surface) SetStrokeColor(c color.RGBA) { s.st.stroke = c }
func (s *Surface) SetLineWidth(w float64)      { s.st.width = w }

func (s *Surface) SetLineDash(dash []float64) {
	s.st.dash = append([]float64(nil), dash...)
}

func (s *Surface) SetFont(size float64) { s.st.fontSize = size }
