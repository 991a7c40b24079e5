package construction

import (
	"bytes"
	"image/color"
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girih/internal/instruction"
	"girih/pkg/geometry"
)

var (
	cobalt = color.RGBA{R: 0x1d, G: 0x4e, B: 0x89, A: 255}
	ochre  = color.RGBA{R: 0xcc, G: 0x77, B: 0x22, A: 255}
)

func testOptions(t *testing.T) (Options, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.New(&buf, "", 0)
	return opts, &buf
}

func mustBuild(t *testing.T, opts Options, prog instruction.Program) *Registry {
	t.Helper()
	reg, err := Build(prog, opts)
	require.NoError(t, err)
	return reg
}

func TestHex1(t *testing.T) {
	opts, _ := testOptions(t)
	reg := mustBuild(t, opts, instruction.Flat("hex1"))

	h := 225 * geometry.Sqrt3Over2
	want := []Point{
		{X: 250, Y: 250},
		{X: 25, Y: 250},
		{X: 137.5, Y: 250 - h},
		{X: 362.5, Y: 250 - h},
		{X: 475, Y: 250},
		{X: 362.5, Y: 250 + h},
		{X: 137.5, Y: 250 + h},
	}
	for i := range want {
		want[i].Source = "hex1"
	}
	if diff := cmp.Diff(want, reg.Points, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []Circle{{Center: 0, Edge: 1}}, reg.Circles)
	assert.Equal(t, []Segment{{1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 1}}, reg.Segments)
	assert.Equal(t, geometry.Pt(250, 250), reg.Center)
	assert.Equal(t, 1, reg.Rounds)
}

func TestHexVariants(t *testing.T) {
	opts, _ := testOptions(t)
	center := geometry.Pt(250, 250)
	tests := []struct {
		line  string
		first geometry.Point
	}{
		{"hex1", geometry.Pt(25, 250)},
		{"hex2", geometry.Pt(250, 25)},
		{"hex3", geometry.Pt(250, 250-225*geometry.Sqrt3Over2)},
		{"hex4", geometry.Pt(250-225*geometry.Sqrt3Over2, 250)},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reg := mustBuild(t, opts, instruction.Flat(tt.line))
			require.Len(t, reg.Points, 7)
			assert.Equal(t, center, reg.At(0))
			assert.InDelta(t, tt.first.X, reg.Points[1].X, 1e-9)
			assert.InDelta(t, tt.first.Y, reg.Points[1].Y, 1e-9)
			assert.Len(t, reg.Segments, 6)
			assert.Len(t, reg.Circles, 1)
		})
	}
}

func TestAddHexRejectsVariant(t *testing.T) {
	opts, _ := testOptions(t)
	b := NewBuilder(opts)
	_, err := b.AddHex(instruction.HexVariant(7))
	assert.ErrorIs(t, err, ErrHexVariant)
	assert.Empty(t, b.Registry().Points)
}

func TestRoundsStampPoints(t *testing.T) {
	opts, _ := testOptions(t)
	prog := instruction.Program{
		{"point,1,2"},
		{"point,3,4", "point,5,6"},
		{},
		{"point,7,8"},
	}
	reg := mustBuild(t, opts, prog)

	var rounds []int
	for _, p := range reg.Points {
		rounds = append(rounds, p.Round)
	}
	assert.Equal(t, []int{0, 1, 1, 3}, rounds)
	assert.Equal(t, 4, reg.Rounds)
	assert.Equal(t, "point,5,6", reg.Points[2].Source)
}

func TestPaletteCyclesPerRound(t *testing.T) {
	opts, _ := testOptions(t)
	opts = opts.WithPalette([]color.RGBA{cobalt, ochre})
	prog := instruction.Program{
		{"hex1"},
		{"shape,1,2,3", "shape,3,4,5"},
		{"shape,0,1,2"},
		{"shapeColor,0,2,4,red"},
	}
	reg := mustBuild(t, opts, prog)

	require.Len(t, reg.Shapes, 4)
	assert.Equal(t, ochre, reg.Shapes[0].Color)
	assert.Equal(t, ochre, reg.Shapes[1].Color)
	assert.Equal(t, cobalt, reg.Shapes[2].Color)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, reg.Shapes[3].Color)

	require.Len(t, reg.Lines, 1)
	assert.Equal(t, []int{0, 2, 4}, reg.Lines[0].Points)
	assert.Equal(t, opts.Style.InnerColor, reg.Lines[0].Color)
}

func TestEmptyPaletteFallsBackToShapeColor(t *testing.T) {
	opts, _ := testOptions(t)
	opts.Palette = nil
	reg := mustBuild(t, opts, instruction.Flat("hex1", "shape,1,2,3"))
	assert.Equal(t, opts.Style.ShapeColor, reg.Shapes[0].Color)
}

func TestDedupPolicy(t *testing.T) {
	prog := instruction.Flat(
		"hex1",
		"segment,1,2", // same as hexagon edge
		"segment,2,1",
		"segment,1,4",
		"segment,4,1",
		"circle,0,1", // same as hexagon circle
		"circle,0,4", // same center, same radius
		"circle,1,4",
	)

	t.Run("none", func(t *testing.T) {
		opts, _ := testOptions(t)
		reg := mustBuild(t, opts, prog)
		assert.Len(t, reg.Segments, 10)
		assert.Len(t, reg.Circles, 4)
	})

	t.Run("construction", func(t *testing.T) {
		opts, _ := testOptions(t)
		opts.Dedup = DedupConstruction
		reg := mustBuild(t, opts, prog)
		assert.Len(t, reg.Segments, 7)
		assert.Equal(t, []Circle{{0, 1}, {1, 4}}, reg.Circles)
	})
}

func TestLineIntersectSkipsInputPoints(t *testing.T) {
	opts, _ := testOptions(t)
	b := NewBuilder(opts)
	_, err := b.AddHex(instruction.Hex1)
	require.NoError(t, err)

	n, err := b.AddLineIntersect(1, 4, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 250, b.Registry().Points[7].X, 1e-9)
	assert.InDelta(t, 250, b.Registry().Points[7].Y, 1e-9)

	// Edges 1-2 and 2-3 meet at vertex 2, which is an input.
	n, err = b.AddLineIntersect(1, 2, 2, 3)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Len(t, b.Registry().Points, 8)
}

func TestLineIntersectParallel(t *testing.T) {
	opts, _ := testOptions(t)
	reg := mustBuild(t, opts, instruction.Flat(
		"point,0,0", "point,10,0", "point,0,5", "point,10,5",
		"addLineIntersect,0,1,2,3",
	))
	assert.Len(t, reg.Points, 4)
}

func TestCircleIntersect(t *testing.T) {
	opts, _ := testOptions(t)
	b := NewBuilder(opts)
	_, err := b.AddHex(instruction.Hex1)
	require.NoError(t, err)

	// The horizontal diameter only meets the circle at its own endpoints.
	n, err := b.AddCircleIntersect(1, 4, 0, 1)
	require.NoError(t, err)
	assert.Zero(t, n)

	top := b.AddPoint(250, 0)
	bottom := b.AddPoint(250, 500)
	n, err = b.AddCircleIntersect(top, bottom, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, geometry.Pt(250, 475), b.Registry().At(9))
	assert.Equal(t, geometry.Pt(250, 25), b.Registry().At(10))
}

func TestIntersectGuides(t *testing.T) {
	opts, _ := testOptions(t)
	opts.IntersectGuides = true
	reg := mustBuild(t, opts, instruction.Flat(
		"point,0,0", "point,10,10", "point,0,10", "point,10,0",
		"addLineIntersect,0,1,2,3",
		"addCircleIntersect,0,1,4,3",
	))
	assert.Equal(t, []Segment{{0, 1}, {2, 3}, {0, 1}}, reg.Segments)
	assert.Equal(t, []Circle{{4, 3}}, reg.Circles)
	assert.Equal(t, geometry.Pt(5, 5), reg.At(4))
}

func TestSymmetricPoint(t *testing.T) {
	opts, _ := testOptions(t)
	b := NewBuilder(opts)
	_, err := b.AddHex(instruction.Hex1)
	require.NoError(t, err)

	i, err := b.AddSymmetricPoint(1, 4, 2)
	require.NoError(t, err)
	got, want := b.Registry().At(i), b.Registry().At(6)
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)

	_, err = b.AddSymmetricPoint(1, 1, 2)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestRelativePoint(t *testing.T) {
	opts, _ := testOptions(t)
	reg := mustBuild(t, opts, instruction.Flat("addRelativePoint,1,-1", "addRelativePoint,0,0"))
	assert.Equal(t, geometry.Pt(475, 25), reg.At(0))
	assert.Equal(t, geometry.Pt(250, 250), reg.At(1))
}

func TestCanvasSetsCenter(t *testing.T) {
	opts, _ := testOptions(t)
	reg := mustBuild(t, opts.WithCanvas(800, 600).WithSize(100), instruction.Flat("hex2"))
	assert.Equal(t, geometry.Pt(400, 300), reg.Center)
	assert.Equal(t, geometry.Pt(400, 250), reg.At(1))
}
