package geometry

// Sqrt3Over2 is √3/2, the sine of 60°.
const Sqrt3Over2 = 0.8660254037844386

// Orientation selects how a hexagon sits on its center.
type Orientation int

const (
	FlatTop   Orientation = iota // Vertices on the horizontal axis, flat top edge
	PointyTop                    // Vertices on the vertical axis, rotated 30° from FlatTop
)

func (o Orientation) String() string {
	switch o {
	case FlatTop:
		return "flat-top"
	case PointyTop:
		return "pointy-top"
	default:
		return "unknown"
	}
}

// HexagonVertices returns the six vertices of the regular hexagon with the
// given center and circumradius.
//
// FlatTop vertices start on the left and walk through the upper half first:
// 180°, 240°, 300°, 0°, 60°, 120° (y grows downward). PointyTop vertices start
// at the top and walk the other way: 270°, 210°, 150°, 90°, 30°, 330°.
// Composite constructors rely on this ordering.
func HexagonVertices(center Point, radius float64, o Orientation) [6]Point {
	cx, cy := center.X, center.Y
	s, s2 := radius, radius/2
	if o == PointyTop {
		return [6]Point{
			{X: cx, Y: cy - s},
			{X: cx - Sqrt3Over2*s, Y: cy - s2},
			{X: cx - Sqrt3Over2*s, Y: cy + s2},
			{X: cx, Y: cy + s},
			{X: cx + Sqrt3Over2*s, Y: cy + s2},
			{X: cx + Sqrt3Over2*s, Y: cy - s2},
		}
	}
	return [6]Point{
		{X: cx - s, Y: cy},
		{X: cx - s2, Y: cy - Sqrt3Over2*s},
		{X: cx + s2, Y: cy - Sqrt3Over2*s},
		{X: cx + s, Y: cy},
		{X: cx + s2, Y: cy + Sqrt3Over2*s},
		{X: cx - s2, Y: cy + Sqrt3Over2*s},
	}
}

// HexagonEdgeMidpoints returns the midpoints of the hexagon's edges, in the
// order used for edge-inscribed rings: mid(1,2), mid(0,1), mid(0,5),
// mid(4,5), mid(3,4), mid(2,3) of the HexagonVertices result.
func HexagonEdgeMidpoints(center Point, radius float64, o Orientation) [6]Point {
	v := HexagonVertices(center, radius, o)
	return [6]Point{
		Midpoint(v[1], v[2]),
		Midpoint(v[0], v[1]),
		Midpoint(v[0], v[5]),
		Midpoint(v[4], v[5]),
		Midpoint(v[3], v[4]),
		Midpoint(v[2], v[3]),
	}
}
