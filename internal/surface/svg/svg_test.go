package svg

import (
	"bytes"
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girih/pkg/colorutil"
)

func square(s *Surface) {
	s.BeginPath()
	s.MoveTo(10, 10)
	s.LineTo(60, 10)
	s.LineTo(60, 60)
	s.LineTo(10, 60)
	s.ClosePath()
}

func TestPathData(t *testing.T) {
	s := New(100, 100, colorutil.White)
	square(s)
	assert.Equal(t, "M10 10 L60 10 L60 60 L10 60 Z", strings.TrimSpace(s.path.String()))

	s.BeginPath()
	s.Arc(50, 50, 20, 0, 2*math.Pi)
	assert.Equal(t, "M70 50 A20 20 0 0 1 30 50 A20 20 0 0 1 70 50", strings.TrimSpace(s.path.String()))

	s.BeginPath()
	s.Arc(0, 0, 10, 0, math.Pi/2)
	assert.Equal(t, "M10 0 A10 10 0 0 1 0 10", strings.TrimSpace(s.path.String()))
}

func TestDocument(t *testing.T) {
	s := New(100, 100, colorutil.White)
	square(s)
	s.SetFillColor(colorutil.Red)
	s.Fill()

	s.SetStrokeColor(colorutil.Neutral)
	s.SetLineWidth(1.5)
	s.SetLineDash([]float64{3, 3})
	s.BeginPath()
	s.Arc(50, 50, 20, 0, 2*math.Pi)
	s.Stroke()

	s.SetFillColor(colorutil.Black)
	s.FillText("7", 55.4, 54.6)
	assert.Equal(t, 3, s.Elements())

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	doc := buf.String()
	assert.Contains(t, doc, `viewBox="0 0 100 100"`)
	assert.Contains(t, doc, "fill:#ff0000;stroke:none")
	assert.Contains(t, doc, "stroke:#222222;stroke-width:1.5;stroke-linejoin:round;stroke-dasharray:3,3")
	assert.Contains(t, doc, `x="55" y="55"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))
}

func TestOutputParses(t *testing.T) {
	s := New(100, 100, colorutil.White)
	square(s)
	s.SetFillColor(colorutil.Red)
	s.Fill()
	s.BeginPath()
	s.Arc(80, 80, 10, 0, 2*math.Pi)
	s.Stroke()
	s.FillText("0", 5, 5)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	icon, err := oksvg.ReadIconStream(&buf)
	require.NoError(t, err)
	assert.Len(t, icon.SVGPaths, 3) // background, square, circle

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	icon.SetTarget(0, 0, 100, 100)
	scanner := rasterx.NewScannerGV(100, 100, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(100, 100, scanner), 1)
	assert.Equal(t, colorutil.Red, img.RGBAAt(35, 35))
	assert.Equal(t, colorutil.White, img.RGBAAt(35, 80))
}

func TestClearDropsElements(t *testing.T) {
	s := New(50, 50, colorutil.Transparent)
	square(s)
	s.Fill()
	s.Clear()
	assert.Zero(t, s.Elements())

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<path")
	assert.NotContains(t, buf.String(), "<rect")
}

func TestTranslucentPaint(t *testing.T) {
	assert.Equal(t, "#ff0000", paint(colorutil.Red, "fill"))
	// Premultiplied half-transparent red.
	half := colorutil.Red
	half.R, half.A = 128, 128
	assert.Equal(t, "#ff0000;fill-opacity:0.502", paint(half, "fill"))
	assert.Equal(t, "#ff0000;stroke-opacity:0.502", paint(colorutil.MustParse("#ff000080"), "stroke"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteToReportsErrors(t *testing.T) {
	s := New(10, 10, colorutil.White)
	_, err := s.WriteTo(failWriter{})
	assert.ErrorContains(t, err, "disk full")
}
