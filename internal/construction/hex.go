package construction

import (
	"fmt"

	"girih/internal/instruction"
	"girih/pkg/geometry"
)

// AddHex runs one of the composite hexagon constructions on the pattern
// center with radius Size/2. It adds the center, a ring of six points, the
// circle through the first ring point and the six ring edges, and returns
// the index of the center.
//
// Hex1 and Hex2 place the ring on the flat-top and pointy-top hexagon
// vertices. Hex3 and Hex4 place it on the edge midpoints of those hexagons
// instead, giving a smaller ring on the same circle center.
func (b *Builder) AddHex(v instruction.HexVariant) (int, error) {
	center := b.reg.Center
	radius := b.opts.Size / 2

	var ring [6]geometry.Point
	switch v {
	case instruction.Hex1:
		ring = geometry.HexagonVertices(center, radius, geometry.FlatTop)
	case instruction.Hex2:
		ring = geometry.HexagonVertices(center, radius, geometry.PointyTop)
	case instruction.Hex3:
		ring = geometry.HexagonEdgeMidpoints(center, radius, geometry.FlatTop)
	case instruction.Hex4:
		ring = geometry.HexagonEdgeMidpoints(center, radius, geometry.PointyTop)
	default:
		return 0, fmt.Errorf("%w: %d", ErrHexVariant, int(v))
	}

	n := b.AddPoint(center.X, center.Y)
	for _, p := range ring {
		b.AddPoint(p.X, p.Y)
	}

	b.addCircle(n, n+1)
	for i := 0; i < len(ring); i++ {
		b.addSegment(n+1+i, n+1+(i+1)%len(ring))
	}
	return n, nil
}
