// Package config loads rendering settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/BurntSushi/toml"

	"girih/internal/construction"
	"girih/internal/render"
	"girih/pkg/colorutil"
)

// ErrInvalid is returned for settings that are out of range or unknown.
var ErrInvalid = errors.New("invalid configuration")

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Config holds everything the renderer can be told from outside a pattern
// document. Zero-valued style fields keep their defaults.
type Config struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Format     string `toml:"format"` // png or svg

	Size     float64 `toml:"size"`
	Symmetry int     `toml:"symmetry"`
	Layers   string  `toml:"layers"` // construction, pattern or both

	Dedup           string `toml:"dedup"` // none or construction
	IntersectGuides bool   `toml:"intersect_guides"`

	Palette []string `toml:"palette"`
	Style   Style    `toml:"style"`
}

// Style mirrors construction.Style with colour names instead of values.
type Style struct {
	GuideColor string    `toml:"guide_color"`
	GuideWidth float64   `toml:"guide_width"`
	GuideDash  []float64 `toml:"guide_dash"`

	MarkerColor  string  `toml:"marker_color"`
	MarkerRadius float64 `toml:"marker_radius"`
	LabelOffset  float64 `toml:"label_offset"`
	FontSize     float64 `toml:"font_size"`

	GroutColor string  `toml:"grout_color"`
	GroutWidth float64 `toml:"grout_width"`
	InnerColor string  `toml:"inner_color"`
	InnerWidth float64 `toml:"inner_width"`

	ShapeColor string `toml:"shape_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := construction.DefaultOptions()
	st := d.Style
	palette := make([]string, len(d.Palette))
	for i, c := range d.Palette {
		palette[i] = colorutil.Hex(c)
	}
	return Config{
		Width:      d.Width,
		Height:     d.Height,
		Background: "white",
		Format:     FormatPNG,
		Size:       d.Size,
		Symmetry:   1,
		Layers:     render.LayerBoth.String(),
		Dedup:      d.Dedup.String(),
		Palette:    palette,
		Style: Style{
			GuideColor:   colorutil.Hex(st.GuideColor),
			GuideWidth:   st.GuideWidth,
			GuideDash:    append([]float64(nil), st.GuideDash...),
			MarkerColor:  colorutil.Hex(st.MarkerColor),
			MarkerRadius: st.MarkerRadius,
			LabelOffset:  st.LabelOffset,
			FontSize:     st.FontSize,
			GroutColor:   colorutil.Hex(st.GroutColor),
			GroutWidth:   st.GroutWidth,
			InnerColor:   colorutil.Hex(st.InnerColor),
			InnerWidth:   st.InnerWidth,
			ShapeColor:   colorutil.Hex(st.ShapeColor),
		},
	}
}

// Load reads a TOML file over the defaults. Keys that do not map to a
// setting are rejected so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for TOML held in memory.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(names, ", "))
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: canvas %dx%d", ErrInvalid, c.Width, c.Height))
	}
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %g", ErrInvalid, c.Size))
	}
	if c.Symmetry < 1 {
		errs = append(errs, fmt.Errorf("%w: symmetry %d", ErrInvalid, c.Symmetry))
	}
	if c.Format != FormatPNG && c.Format != FormatSVG {
		errs = append(errs, fmt.Errorf("%w: format %q", ErrInvalid, c.Format))
	}
	if _, err := render.ParseLayers(c.Layers); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := construction.ParseDedupPolicy(c.Dedup); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := colorutil.ParseAll(c.Palette); err != nil {
		errs = append(errs, fmt.Errorf("%w: palette %w", ErrInvalid, err))
	}
	if _, err := c.Style.resolve(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BackgroundColor parses the background setting.
func (c Config) BackgroundColor() (color.RGBA, error) {
	bg, err := colorutil.Parse(c.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: background %w", ErrInvalid, err)
	}
	return bg, nil
}

// LayersValue returns the parsed layer selection.
func (c Config) LayersValue() (render.Layers, error) {
	l, err := render.ParseLayers(c.Layers)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return l, nil
}

// Options converts the configuration to construction options. Warnings from
// the build go to logger.
func (c Config) Options(logger *log.Logger) (construction.Options, error) {
	opts := construction.DefaultOptions().WithCanvas(c.Width, c.Height).WithSize(c.Size)
	opts.Logger = logger
	opts.IntersectGuides = c.IntersectGuides

	dedup, err := construction.ParseDedupPolicy(c.Dedup)
	if err != nil {
		return opts, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	opts.Dedup = dedup

	palette, err := colorutil.ParseAll(c.Palette)
	if err != nil {
		return opts, fmt.Errorf("%w: palette %w", ErrInvalid, err)
	}
	opts = opts.WithPalette(palette)

	style, err := c.Style.resolve()
	if err != nil {
		return opts, err
	}
	opts.Style = style
	return opts, nil
}

// resolve merges s over the default style.
func (s Style) resolve() (construction.Style, error) {
	out := construction.DefaultStyle()
	colors := []struct {
		name string
		val  string
		dst  *color.RGBA
	}{
		{"guide_color", s.GuideColor, &out.GuideColor},
		{"marker_color", s.MarkerColor, &out.MarkerColor},
		{"grout_color", s.GroutColor, &out.GroutColor},
		{"inner_color", s.InnerColor, &out.InnerColor},
		{"shape_color", s.ShapeColor, &out.ShapeColor},
	}
	for _, c := range colors {
		if c.val == "" {
			continue
		}
		v, err := colorutil.Parse(c.val)
		if err != nil {
			return out, fmt.Errorf("%w: style.%s %w", ErrInvalid, c.name, err)
		}
		*c.dst = v
	}

	widths := []struct {
		name string
		val  float64
		dst  *float64
	}{
		{"guide_width", s.GuideWidth, &out.GuideWidth},
		{"marker_radius", s.MarkerRadius, &out.MarkerRadius},
		{"label_offset", s.LabelOffset, &out.LabelOffset},
		{"font_size", s.FontSize, &out.FontSize},
		{"grout_width", s.GroutWidth, &out.GroutWidth},
		{"inner_width", s.InnerWidth, &out.InnerWidth},
	}
	for _, w := range widths {
		if w.val < 0 {
			return out, fmt.Errorf("%w: style.%s %g", ErrInvalid, w.name, w.val)
		}
		if w.val > 0 {
			*w.dst = w.val
		}
	}

	if s.GuideDash != nil {
		for _, d := range s.GuideDash {
			if d < 0 {
				return out, fmt.Errorf("%w: style.guide_dash %v", ErrInvalid, s.GuideDash)
			}
		}
		out.GuideDash = append([]float64(nil), s.GuideDash...)
	}
	return out, nil
}
