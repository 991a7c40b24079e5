// Package record provides a Surface that draws nothing and remembers every
// call made on it.
package record

import (
	"fmt"
	"image/color"
	"strings"

	"girih/pkg/colorutil"
)

// Op names, one per Surface method.
const (
	OpClear          = "Clear"
	OpSave           = "Save"
	OpRestore        = "Restore"
	OpBeginPath      = "BeginPath"
	OpMoveTo         = "MoveTo"
	OpLineTo         = "LineTo"
	OpArc            = "Arc"
	OpClosePath      = "ClosePath"
	OpFill           = "Fill"
	OpStroke         = "Stroke"
	OpFillText       = "FillText"
	OpSetFillColor   = "SetFillColor"
	OpSetStrokeColor = "SetStrokeColor"
	OpSetLineWidth   = "SetLineWidth"
	OpSetLineDash    = "SetLineDash"
	OpSetFont        = "SetFont"
)

// Call is one recorded method call.
type Call struct {
	Op    string
	Args  []float64
	Text  string     // FillText only
	Color color.RGBA // SetFillColor and SetStrokeColor only
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	switch c.Op {
	case OpFillText:
		fmt.Fprintf(&b, " %q", c.Text)
	case OpSetFillColor, OpSetStrokeColor:
		b.WriteString(" " + colorutil.Hex(c.Color))
	}
	for _, a := range c.Args {
		fmt.Fprintf(&b, " %.3f", a)
	}
	return b.String()
}

// Surface records calls. The zero value is not usable; use New.
type Surface struct {
	width, height int
	Calls         []Call
}

// New returns a recording surface reporting the given size.
func New(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

func (s *Surface) add(op string, args ...float64) {
	s.Calls = append(s.Calls, Call{Op: op, Args: args})
}

// Reset forgets all recorded calls.
func (s *Surface) Reset() {
	s.Calls = s.Calls[:0]
}

// Ops returns the op names in call order.
func (s *Surface) Ops() []string {
	out := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		out[i] = c.Op
	}
	return out
}

// Count returns how many times op was called.
func (s *Surface) Count(op string) int {
	n := 0
	for _, c := range s.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Index returns the position of the first call to op at or after from, or -1.
func (s *Surface) Index(op string, from int) int {
	for i := from; i < len(s.Calls); i++ {
		if s.Calls[i].Op == op {
			return i
		}
	}
	return -1
}

// LastIndex returns the position of the last call to op, or -1.
func (s *Surface) LastIndex(op string) int {
	for i := len(s.Calls) - 1; i >= 0; i-- {
		if s.Calls[i].Op == op {
			return i
		}
	}
	return -1
}

func (s *Surface) Size() (int, int) { return s.width, s.height }
func (s *Surface) Clear()           { s.add(OpClear) }
func (s *Surface) Save()            { s.add(OpSave) }
func (s *Surface) Restore()         { s.add(OpRestore) }
func (s *Surface) BeginPath()       { s.add(OpBeginPath) }
func (s *Surface) MoveTo(x, y float64) {
	s.add(OpMoveTo, x, y)
}
func (s *Surface) LineTo(x, y float64) {
	s.add(OpLineTo, x, y)
}
func (s *Surface) Arc(cx, cy, r, start, end float64) {
	s.add(OpArc, cx, cy, r, start, end)
}
func (s *Surface) ClosePath() { s.add(OpClosePath) }
func (s *Surface) Fill()      { s.add(OpFill) }
func (s *Surface) Stroke()    { s.add(OpStroke) }

func (s *Surface) FillText(text string, x, y float64) {
	s.Calls = append(s.Calls, Call{Op: OpFillText, Text: text, Args: []float64{x, y}})
}

func (s *Surface) SetFillColor(c color.RGBA) {
	s.Calls = append(s.Calls, Call{Op: OpSetFillColor, Color: c})
}

func (s *Surface) SetStrokeColor(c color.RGBA) {
	s.Calls = append(s.Calls, Call{Op: OpSetStrokeColor, Color: c})
}

func (s *Surface) SetLineWidth(w float64) { s.add(OpSetLineWidth, w) }

func (s *Surface) SetLineDash(dash []float64) {
	s.add(OpSetLineDash, append([]float64(nil), dash...)...)
}

func (s *Surface) SetFont(size float64) { s.add(OpSetFont, size) }
