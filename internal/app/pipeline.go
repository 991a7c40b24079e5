// Package app runs the load, build, render and write pipeline behind the
// command-line tools, and watches its inputs for changes.
package app

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"girih/internal/config"
	"girih/internal/construction"
	"girih/internal/pattern"
	"girih/internal/render"
	"girih/internal/surface/raster"
	"girih/internal/surface/svg"
)

// Overrides are settings given on the command line. Zero values leave the
// document and configuration settings alone.
type Overrides struct {
	Format   string
	Layers   string
	Symmetry int
	Size     float64
	Width    int
	Height   int
}

// Job describes one pipeline run.
type Job struct {
	PatternPath string
	ConfigPath  string // empty uses the defaults
	OutputPath  string
	Overrides   Overrides
	Logger      *log.Logger // nil uses log.Default()
}

func (j Job) logger() *log.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return log.Default()
}

// Result is what a run produced.
type Result struct {
	Document *pattern.Document
	Config   config.Config // effective settings
	Registry *construction.Registry

	// BuildErr joins the instructions that were skipped. The output is
	// still written when it is set.
	BuildErr error
}

// Settings loads the configuration and the pattern document and merges
// them. Precedence, lowest first: defaults, configuration file, document,
// command line.
func Settings(job Job) (config.Config, *pattern.Document, error) {
	cfg := config.Default()
	if job.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(job.ConfigPath); err != nil {
			return config.Config{}, nil, err
		}
	}

	doc, err := pattern.Load(job.PatternPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if doc.Symmetry != 0 {
		cfg.Symmetry = doc.Symmetry
	}
	if doc.Size != 0 {
		cfg.Size = doc.Size
	}

	o := job.Overrides
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Layers != "" {
		cfg.Layers = o.Layers
	}
	if o.Symmetry != 0 {
		cfg.Symmetry = o.Symmetry
	}
	if o.Size != 0 {
		cfg.Size = o.Size
	}
	if o.Width != 0 {
		cfg.Width = o.Width
	}
	if o.Height != 0 {
		cfg.Height = o.Height
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, doc, nil
}

// Build executes the document's program with the given settings.
func Build(cfg config.Config, doc *pattern.Document, logger *log.Logger) (*construction.Registry, error) {
	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, err
	}
	return construction.Build(doc.Program(), opts)
}

// Draw renders reg in cfg.Format and writes the encoded image to w.
func Draw(w io.Writer, cfg config.Config, reg *construction.Registry) error {
	layers, err := cfg.LayersValue()
	if err != nil {
		return err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatSVG:
		s := svg.New(cfg.Width, cfg.Height, bg)
		if err := render.Render(s, reg, cfg.Symmetry, layers); err != nil {
			return err
		}
		_, err := s.WriteTo(w)
		return err
	case config.FormatPNG:
		s, err := raster.New(cfg.Width, cfg.Height, bg)
		if err != nil {
			return err
		}
		if err := render.Render(s, reg, cfg.Symmetry, layers); err != nil {
			return err
		}
		return s.EncodePNG(w)
	default:
		return fmt.Errorf("%w: format %q", config.ErrInvalid, cfg.Format)
	}
}

// Run performs a full pipeline run. Skipped instructions are logged and
// reported in Result.BuildErr; the image is written regardless.
func Run(job Job) (*Result, error) {
	logger := job.logger()

	cfg, doc, err := Settings(job)
	if err != nil {
		return nil, err
	}

	reg, buildErr := Build(cfg, doc, logger)
	if reg == nil {
		return nil, buildErr
	}
	res := &Result{Document: doc, Config: cfg, Registry: reg, BuildErr: buildErr}

	var buf bytes.Buffer
	if err := Draw(&buf, cfg, reg); err != nil {
		return res, fmt.Errorf("failed to render %s: %w", doc.Name, err)
	}
	if err := writeFile(job.OutputPath, buf.Bytes()); err != nil {
		return res, err
	}

	logger.Printf("Render: wrote %s (%s, %d points, %d-fold, %d skipped)",
		job.OutputPath, doc.Name, len(reg.Points), cfg.Symmetry, countErrors(buildErr))
	return res, nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func countErrors(err error) int {
	if err == nil {
		return 0
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return len(j.Unwrap())
	}
	return 1
}
