package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))

	r := BoundingBox([]Point{Pt(10, 40), Pt(-5, 20), Pt(30, 25)})
	assert.Equal(t, Rect{X: -5, Y: 20, Width: 35, Height: 20}, r)
	assert.Equal(t, Pt(12.5, 30), r.Center())
	assert.True(t, r.Contains(Pt(0, 20)))
	assert.False(t, r.Contains(Pt(31, 30)))
	assert.Equal(t, "[-5,20 35x20]", r.String())
}
