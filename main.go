// Package main provides the girih command, which renders a pattern document
// to PNG or SVG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"girih/internal/app"
	"girih/internal/version"
)

const watchDebounce = 200 * time.Millisecond

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	patternPath := flag.String("pattern", "", "Pattern document (.yaml, .yml or line format .txt)")
	configPath := flag.String("config", "", "TOML configuration file")
	outPath := flag.String("o", "", "Output file (default: pattern name with the format's extension)")
	format := flag.String("format", "", "Output format: png or svg (default by -o extension, else from config, else png)")
	symmetry := flag.Int("symmetry", 0, "Rotational symmetry order (overrides document and config)")
	size := flag.Float64("size", 0, "Pattern size in pixels (overrides document and config)")
	width := flag.Int("width", 0, "Canvas width (overrides config)")
	height := flag.Int("height", 0, "Canvas height (overrides config)")
	layers := flag.String("layers", "", "Layers to draw: construction, pattern or both")
	watch := flag.Bool("watch", false, "Re-render whenever the pattern or config file changes")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("girih"))
		return
	}
	if *patternPath == "" {
		fmt.Println("Usage: girih -pattern <file> [-config girih.toml] [-o out.png] [-format png|svg] [-symmetry n] [-layers both] [-watch]")
		os.Exit(1)
	}

	if *format == "" {
		*format = formatFromPath(*outPath)
	}

	job := app.Job{
		PatternPath: *patternPath,
		ConfigPath:  *configPath,
		OutputPath:  *outPath,
		Overrides: app.Overrides{
			Format:   *format,
			Layers:   *layers,
			Symmetry: *symmetry,
			Size:     *size,
			Width:    *width,
			Height:   *height,
		},
	}
	if job.OutputPath == "" {
		cfg, doc, err := app.Settings(job)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", *patternPath, err)
		}
		job.OutputPath = doc.Name + "." + cfg.Format
	}

	if err := runOnce(job); err != nil && !*watch {
		os.Exit(1)
	}
	if !*watch {
		return
	}

	paths := []string{*patternPath}
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	w, err := app.NewWatcher(paths, watchDebounce, nil)
	if err != nil {
		log.Fatalf("Watch: %v", err)
	}
	defer w.Close()
	w.OnChange(func(string) { _ = runOnce(job) })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Printf("Watch: watching %s", strings.Join(paths, ", "))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Watch: %v", err)
	}
}

// formatFromPath infers the output format from a file extension. The result
// is a command-line override, so it beats the configuration file.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg"
	case ".png":
		return "png"
	}
	return ""
}

// runOnce renders the job and logs the outcome.
func runOnce(job app.Job) error {
	res, err := app.Run(job)
	if err != nil {
		log.Printf("Render failed: %v", err)
		return err
	}
	if res.BuildErr != nil {
		log.Printf("Render: %s has skipped instructions:\n%v", res.Document.Name, res.BuildErr)
	}
	return nil
}
