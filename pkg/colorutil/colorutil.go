// Package colorutil provides colour parsing and formatting shared by the
// construction engine and the drawing surfaces.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned when a colour string is neither a CSS colour
// name nor a hex triplet.
var ErrUnknownColor = errors.New("unknown color")

// Common colors used throughout the application.
var (
	Black       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Neutral     = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 255} // construction guides and markers
	Transparent = color.RGBA{}
)

// DefaultPalette is the zellige-inspired palette used for shapes that do not
// name a colour.
var DefaultPalette = []color.RGBA{
	{R: 0x1d, G: 0x4e, B: 0x89, A: 255}, // cobalt
	{R: 0x00, G: 0xa6, B: 0x9c, A: 255}, // turquoise
	{R: 0xf2, G: 0xc1, B: 0x4e, A: 255}, // saffron
	{R: 0xe8, G: 0xe0, B: 0xd0, A: 255}, // bone
	{R: 0x2e, G: 0x7d, B: 0x32, A: 255}, // green
}

// Parse converts a colour string into RGBA. It accepts CSS colour names
// ("red", "navy"), "#rgb", "#rrggbb" and "#rrggbbaa".
func Parse(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty string", ErrUnknownColor)
	}
	if name == "transparent" {
		return Transparent, nil
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:])
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// MustParse is like Parse but panics on error. It is intended for package
// level defaults.
func MustParse(s string) color.RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses every entry of a colour list.
func ParseAll(names []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(names))
	for i, n := range names {
		c, err := Parse(n)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseHex(h string) (color.RGBA, error) {
	switch len(h) {
	case 3:
		// #rgb expands each nibble: #f80 == #ff8800
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("%w: bad hex length in #%s", ErrUnknownColor, h)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrUnknownColor, h)
	}
	if len(h) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	// Hex alpha is straight; color.RGBA is premultiplied.
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}

// Hex formats a colour as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
	}
	// RGBA() is premultiplied; undo it for the straight-alpha hex form.
	if a == 0 {
		return "#00000000"
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r*0xffff/a>>8, g*0xffff/a>>8, b*0xffff/a>>8, a>>8)
}
