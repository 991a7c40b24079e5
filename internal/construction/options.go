package construction

import (
	"fmt"
	"image/color"
	"log"

	"girih/pkg/colorutil"
)

// DedupPolicy controls whether repeated construction geometry is kept.
type DedupPolicy int

const (
	DedupNone         DedupPolicy = iota // Keep every segment and circle
	DedupConstruction                    // Drop repeated segments and equal circles
)

func (p DedupPolicy) String() string {
	switch p {
	case DedupNone:
		return "none"
	case DedupConstruction:
		return "construction"
	default:
		return "unknown"
	}
}

// ParseDedupPolicy converts "none" or "construction" to a DedupPolicy.
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch s {
	case "none", "":
		return DedupNone, nil
	case "construction":
		return DedupConstruction, nil
	default:
		return 0, fmt.Errorf("unknown dedup policy %q", s)
	}
}

// Style holds the drawing parameters a registry is rendered with.
type Style struct {
	// Construction guides
	GuideColor color.RGBA
	GuideWidth float64
	GuideDash  []float64

	// Point markers and their index labels
	MarkerColor  color.RGBA
	MarkerRadius float64
	LabelOffset  float64 // Label distance right of and below the marker
	FontSize     float64 // Label size in pixels

	// Pattern outlines: a wide grout stroke with a thinner inner stroke on top
	GroutColor color.RGBA
	GroutWidth float64
	InnerColor color.RGBA // Inner stroke for lines that do not name a colour
	InnerWidth float64

	// ShapeColor fills shapes without a colour when the palette is empty.
	ShapeColor color.RGBA
}

// DefaultStyle returns the default drawing style.
func DefaultStyle() Style {
	return Style{
		GuideColor: colorutil.Neutral,
		GuideWidth: 1,
		GuideDash:  []float64{3, 3},

		MarkerColor:  colorutil.Neutral,
		MarkerRadius: 3,
		LabelOffset:  5,
		FontSize:     12,

		GroutColor: colorutil.Black,
		GroutWidth: 5,
		InnerColor: colorutil.White,
		InnerWidth: 3,

		ShapeColor: colorutil.Red,
	}
}

// Options configures a Builder.
type Options struct {
	Width  int     // Canvas width; the pattern center is the canvas middle
	Height int     // Canvas height
	Size   float64 // Pattern size

	Style   Style
	Palette []color.RGBA // Auto colours for shapes, cycled once per round

	Dedup           DedupPolicy
	IntersectGuides bool // Also register the lines and circles that intersections come from

	Logger *log.Logger // Receives warnings; nil uses log.Default()
}

// DefaultOptions returns options for a 500x500 canvas with a 450 pattern.
func DefaultOptions() Options {
	return Options{
		Width:   500,
		Height:  500,
		Size:    450,
		Style:   DefaultStyle(),
		Palette: append([]color.RGBA(nil), colorutil.DefaultPalette...),
		Dedup:   DedupNone,
	}
}

// WithCanvas returns a copy of opts for a canvas of the given size.
func (o Options) WithCanvas(width, height int) Options {
	o.Width = width
	o.Height = height
	return o
}

// WithSize returns a copy of opts with a different pattern size.
func (o Options) WithSize(size float64) Options {
	o.Size = size
	return o
}

// WithPalette returns a copy of opts using the given palette.
func (o Options) WithPalette(p []color.RGBA) Options {
	o.Palette = append([]color.RGBA(nil), p...)
	return o
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
