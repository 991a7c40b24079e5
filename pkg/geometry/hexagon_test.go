package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestHexagonVerticesRadius(t *testing.T) {
	center := Pt(250, 250)
	for _, o := range []Orientation{FlatTop, PointyTop} {
		t.Run(o.String(), func(t *testing.T) {
			vs := HexagonVertices(center, 225, o)
			require.Len(t, vs, 6)
			for _, v := range vs {
				d := math.Hypot(v.X-center.X, v.Y-center.Y)
				assert.True(t, scalar.EqualWithinRel(d, 225, 1e-9), "distance %v", d)
			}
		})
	}
}

func TestHexagonOrientationsDifferBy30Degrees(t *testing.T) {
	center := Pt(10, 20)
	flat := HexagonVertices(center, 4, FlatTop)
	pointy := HexagonVertices(center, 4, PointyTop)
	for _, v := range flat {
		turned := Rotate(v, center, math.Pi/6)
		assert.True(t, nearAnyArray(turned, pointy), "no pointy vertex at %v", turned)
	}
}

func TestHexagonVertexOrder(t *testing.T) {
	flat := HexagonVertices(Pt(0, 0), 2, FlatTop)
	assert.Equal(t, Pt(-2, 0), flat[0])
	assert.Equal(t, Pt(2, 0), flat[3])
	assert.InDelta(t, -2*Sqrt3Over2, flat[1].Y, 1e-15)

	pointy := HexagonVertices(Pt(0, 0), 2, PointyTop)
	assert.Equal(t, Pt(0, -2), pointy[0])
	assert.Equal(t, Pt(0, 2), pointy[3])
}

func TestHexagonEdgeMidpoints(t *testing.T) {
	center := Pt(0, 0)
	v := HexagonVertices(center, 2, FlatTop)
	mids := HexagonEdgeMidpoints(center, 2, FlatTop)
	assert.Equal(t, Midpoint(v[1], v[2]), mids[0])
	assert.Equal(t, Midpoint(v[2], v[3]), mids[5])
	for _, m := range mids {
		assert.InDelta(t, 2*Sqrt3Over2, math.Hypot(m.X, m.Y), 1e-12)
	}
}

func nearAnyArray(p Point, vs [6]Point) bool {
	return NearAny(p, vs[:], 1e-9)
}
