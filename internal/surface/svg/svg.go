// Package svg implements a drawing surface that produces an SVG document
// with github.com/ajstarks/svgo.
package svg

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"girih/pkg/colorutil"
)

type state struct {
	fill     color.RGBA
	stroke   color.RGBA
	width    float64
	dash     []float64
	fontSize float64
}

// Surface records drawing as SVG elements. Call WriteTo to emit the
// document.
type Surface struct {
	width, height int
	background    color.RGBA

	body   bytes.Buffer
	canvas *svgo.SVG

	st    state
	stack []state

	path  strings.Builder
	open  bool // a current point exists
	elems int
}

// New returns a width x height surface with the given background.
func New(width, height int, background color.RGBA) *Surface {
	s := &Surface{
		width:      width,
		height:     height,
		background: background,
		st: state{
			fill:     colorutil.Black,
			stroke:   colorutil.Black,
			width:    1,
			fontSize: 12,
		},
	}
	s.canvas = svgo.New(&s.body)
	s.Clear()
	return s
}

// Elements returns the number of elements drawn since the last Clear,
// not counting the background.
func (s *Surface) Elements() int {
	return s.elems
}

// WriteTo writes the complete SVG document.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	doc := svgo.New(cw)
	doc.Startview(s.width, s.height, 0, 0, s.width, s.height)
	if cw.err == nil {
		_, _ = doc.Writer.Write(s.body.Bytes())
	}
	doc.End()
	if cw.err != nil {
		return cw.n, fmt.Errorf("failed to write SVG: %w", cw.err)
	}
	return cw.n, nil
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Clear drops everything drawn so far and paints the background.
func (s *Surface) Clear() {
	s.body.Reset()
	s.elems = 0
	s.BeginPath()
	if s.background.A != 0 {
		s.canvas.Rect(0, 0, s.width, s.height, "fill:"+paint(s.background, "fill"))
	}
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
	s.path.Reset()
	s.open = false
}

func (s *Surface) MoveTo(x, y float64) {
	s.cmd("M", x, y)
	s.open = true
}

func (s *Surface) LineTo(x, y float64) {
	if !s.open {
		s.MoveTo(x, y)
		return
	}
	s.cmd("L", x, y)
}

// Arc adds an arc from angle start to angle end, clockwise on screen for
// increasing angles, joined to the current point by a straight line. Sweeps
// of a full turn or more become a full circle.
func (s *Surface) Arc(cx, cy, r, start, end float64) {
	sweep := end - start
	x0, y0 := cx+r*math.Cos(start), cy+r*math.Sin(start)
	s.LineTo(x0, y0)

	flag := 1
	if sweep < 0 {
		flag = 0
	}
	if math.Abs(sweep) >= 2*math.Pi {
		// A single SVG arc cannot close on itself; go through the far side.
		s.arcTo(r, 0, flag, 2*cx-x0, 2*cy-y0)
		s.arcTo(r, 0, flag, x0, y0)
		return
	}
	large := 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	s.arcTo(r, large, flag, cx+r*math.Cos(end), cy+r*math.Sin(end))
}

func (s *Surface) arcTo(r float64, large, sweep int, x, y float64) {
	fmt.Fprintf(&s.path, "A%s %s 0 %d %d %s %s ", num(r), num(r), large, sweep, num(x), num(y))
}

func (s *Surface) ClosePath() {
	if !s.open {
		return
	}
	// After Z the current point is the subpath start again.
	s.path.WriteString("Z ")
}

func (s *Surface) cmd(c string, x, y float64) {
	s.path.WriteString(c)
	s.path.WriteString(num(x))
	s.path.WriteByte(' ')
	s.path.WriteString(num(y))
	s.path.WriteByte(' ')
}

func (s *Surface) Fill() {
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	s.canvas.Path(d, "fill:"+paint(s.st.fill, "fill")+";stroke:none")
	s.elems++
}

func (s *Surface) Stroke() {
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	style := []string{
		"fill:none",
		"stroke:" + paint(s.st.stroke, "stroke"),
		"stroke-width:" + num(s.st.width),
		"stroke-linejoin:round",
	}
	if len(s.st.dash) > 0 {
		parts := make([]string, len(s.st.dash))
		for i, v := range s.st.dash {
			parts[i] = num(v)
		}
		style = append(style, "stroke-dasharray:"+strings.Join(parts, ","))
	}
	s.canvas.Path(d, strings.Join(style, ";"))
	s.elems++
}

// FillText places text with its baseline starting at x, y. Coordinates are
// rounded to whole pixels.
func (s *Surface) FillText(text string, x, y float64) {
	s.canvas.Text(int(math.Round(x)), int(math.Round(y)), text,
		"fill:"+paint(s.st.fill, "fill")+";font-family:sans-serif;font-size:"+num(s.st.fontSize)+"px")
	s.elems++
}

func (s *Surface) SetFillColor(c color.RGBA)   { s.st.fill = c }
func (s *Surface) SetStrokeColor(c color.RGBA) { s.st.stroke = c }
func (s *Surface) SetLineWidth(w float64)      { s.st.width = w }

func (s *Surface) SetLineDash(dash []float64) {
	s.st.dash = append([]float64(nil), dash...)
}

func (s *Surface) SetFont(size float64) { s.st.fontSize = size }

// paint formats c as an opaque hex colour, adding a <prop>-opacity
// declaration when c is translucent.
func paint(c color.RGBA, prop string) string {
	if c.A == 255 {
		return colorutil.Hex(c)
	}
	opaque := c
	if c.A != 0 {
		// color.RGBA is premultiplied.
		opaque = color.RGBA{
			R: uint8(uint32(c.R) * 255 / uint32(c.A)),
			G: uint8(uint32(c.G) * 255 / uint32(c.A)),
			B: uint8(uint32(c.B) * 255 / uint32(c.A)),
			A: 255,
		}
	}
	return colorutil.Hex(opaque) + ";" + prop + "-opacity:" + num(float64(c.A)/255)
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
