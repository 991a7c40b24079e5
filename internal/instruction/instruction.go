// Package instruction parses the pattern construction language.
//
// An instruction is one line of the form
//
//	command,arg1,arg2,...[,colorName]
//
// where every argument is an integer except the trailing colour accepted by
// lineColor and shapeColor. Parse turns a line into one of the concrete types
// in this package; consumers dispatch on them with a type switch.
package instruction

import "fmt"

// Instruction is implemented by every parsed instruction type. The set is
// closed: only types in this package satisfy it.
type Instruction interface {
	// Command returns the command word the instruction was parsed from.
	Command() string
	instruction()
}

// CircleIntersect adds the intersections of line A-B with the circle centred
// on Center passing through Edge.
type CircleIntersect struct {
	A, B         int
	Center, Edge int
}

// LineIntersect adds the intersection of lines A-B and C-D.
type LineIntersect struct {
	A, B, C, D int
}

// RelativePoint adds a point offset from the pattern center by DX, DY half
// pattern sizes.
type RelativePoint struct {
	DX, DY int
}

// SymmetricPoint adds the reflection of C across line A-B.
type SymmetricPoint struct {
	A, B, C int
}

// Circle adds a construction circle centred on Center passing through Edge.
type Circle struct {
	Center, Edge int
}

// HexVariant selects one of the four composite hexagon constructors.
type HexVariant int

const (
	Hex1 HexVariant = iota + 1 // flat-top vertex ring
	Hex2                       // pointy-top vertex ring
	Hex3                       // flat-top edge-midpoint ring
	Hex4                       // pointy-top edge-midpoint ring
)

func (v HexVariant) String() string {
	return fmt.Sprintf("hex%d", int(v))
}

// Hex adds a composite hexagon construction anchored on the pattern center.
type Hex struct {
	Variant HexVariant
}

// Line adds a pattern outline. Color is empty when the instruction was a
// plain "line".
type Line struct {
	Points []int
	Color  string
}

// Point adds a point at absolute coordinates.
type Point struct {
	X, Y int
}

// Segment adds a construction segment.
type Segment struct {
	A, B int
}

// Shape adds a filled pattern shape coloured from the palette.
type Shape struct {
	Points []int
}

// ShapeColor adds a filled shape in Color plus an outline over the same
// points.
type ShapeColor struct {
	Points []int
	Color  string
}

// Unknown holds a command word that is not part of the language. Executing it
// only produces a warning.
type Unknown struct {
	Name string
	Args []string
}

func (CircleIntersect) Command() string { return CmdCircleIntersect }
func (LineIntersect) Command() string   { return CmdLineIntersect }
func (RelativePoint) Command() string   { return CmdRelativePoint }
func (SymmetricPoint) Command() string  { return CmdSymmetricPoint }
func (Circle) Command() string          { return CmdCircle }
func (h Hex) Command() string           { return h.Variant.String() }
func (Point) Command() string           { return CmdPoint }
func (Segment) Command() string         { return CmdSegment }
func (Shape) Command() string           { return CmdShape }
func (ShapeColor) Command() string      { return CmdShapeColor }
func (u Unknown) Command() string       { return u.Name }

func (l Line) Command() string {
	if l.Color != "" {
		return CmdLineColor
	}
	return CmdLine
}

func (CircleIntersect) instruction() {}
func (LineIntersect) instruction()   {}
func (RelativePoint) instruction()   {}
func (SymmetricPoint) instruction()  {}
func (Circle) instruction()          {}
func (Hex) instruction()             {}
func (Line) instruction()            {}
func (Point) instruction()           {}
func (Segment) instruction()         {}
func (Shape) instruction()           {}
func (ShapeColor) instruction()      {}
func (Unknown) instruction()         {}
