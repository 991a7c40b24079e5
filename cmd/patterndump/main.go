// Command patterndump builds a pattern document and prints the resulting
// registry as tables.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"girih/internal/app"
	"girih/internal/construction"
	"girih/internal/render"
	"girih/internal/surface/record"
	"girih/pkg/colorutil"
)

func main() {
	patternPath := flag.String("pattern", "", "Pattern document (.yaml, .yml or .txt)")
	configPath := flag.String("config", "", "TOML configuration file")
	symmetry := flag.Int("symmetry", 0, "Rotational symmetry order (overrides document and config)")
	calls := flag.Bool("calls", false, "Print every surface call of the render")
	flag.Parse()

	if *patternPath == "" {
		fmt.Println("Usage: patterndump -pattern <file> [-config girih.toml] [-symmetry n] [-calls]")
		os.Exit(1)
	}

	job := app.Job{
		PatternPath: *patternPath,
		ConfigPath:  *configPath,
		Overrides:   app.Overrides{Symmetry: *symmetry},
	}
	cfg, doc, err := app.Settings(job)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "", 0)
	reg, buildErr := app.Build(cfg, doc, logger)
	if reg == nil {
		fmt.Fprintf(os.Stderr, "Failed to build: %v\n", buildErr)
		os.Exit(1)
	}

	fmt.Printf("Pattern: %s\n", doc.Name)
	fmt.Printf("Canvas: %dx%d, size %.0f, %d-fold symmetry\n", cfg.Width, cfg.Height, cfg.Size, cfg.Symmetry)
	fmt.Printf("Rounds: %d\n", reg.Rounds)

	fmt.Printf("\nPoints (%d):\n", len(reg.Points))
	fmt.Printf("%5s %10s %10s %6s  %s\n", "Index", "X", "Y", "Round", "Source")
	fmt.Println(strings.Repeat("-", 60))
	for i, p := range reg.Points {
		fmt.Printf("%5d %10.3f %10.3f %6d  %s\n", i, p.X, p.Y, p.Round, p.Source)
	}

	fmt.Printf("\nConstruction: %d segments, %d circles\n", len(reg.Segments), len(reg.Circles))
	for _, c := range reg.Circles {
		r, _ := reg.Radius(c)
		fmt.Printf("  circle %d through %d, radius %.3f\n", c.Center, c.Edge, r)
	}

	fmt.Printf("\nPattern: %d shapes, %d lines\n", len(reg.Shapes), len(reg.Lines))
	printPolys("shape", shapes(reg))
	printPolys("line", lines(reg))

	b := reg.Bounds()
	fmt.Printf("\nBounds: %s\n", b)

	s := record.New(cfg.Width, cfg.Height)
	layers, _ := cfg.LayersValue()
	if err := render.Render(s, reg, cfg.Symmetry, layers); err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render: %d surface calls (%d fills, %d strokes)\n",
		len(s.Calls), s.Count(record.OpFill), s.Count(record.OpStroke))
	if *calls {
		for _, c := range s.Calls {
			fmt.Println("  " + c.String())
		}
	}

	if buildErr != nil {
		fmt.Printf("\nSkipped instructions:\n%v\n", buildErr)
		os.Exit(2)
	}
}

type poly struct {
	points []int
	color  string
}

func shapes(reg *construction.Registry) []poly {
	out := make([]poly, len(reg.Shapes))
	for i, s := range reg.Shapes {
		out[i] = poly{s.Points, colorutil.Hex(s.Color)}
	}
	return out
}

func lines(reg *construction.Registry) []poly {
	out := make([]poly, len(reg.Lines))
	for i, l := range reg.Lines {
		out[i] = poly{l.Points, colorutil.Hex(l.Color)}
	}
	return out
}

func printPolys(kind string, ps []poly) {
	for i, p := range ps {
		fmt.Printf("  %s %d: %v %s\n", kind, i, p.points, p.color)
	}
}
