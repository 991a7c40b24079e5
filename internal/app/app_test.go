package app

import (
	"bytes"
	"context"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"girih/internal/config"
	"girih/internal/construction"
)

const starDoc = `name: star
symmetry: 6
instructions:
  - hex1
  - - addLineIntersect,1,4,2,5
    - shape,0,1,2
    - line,0,1,2
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testJob(t *testing.T, dir string) (Job, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return Job{
		PatternPath: write(t, dir, "star.yaml", starDoc),
		OutputPath:  filepath.Join(dir, "star.out"),
		Logger:      log.New(&logs, "", 0),
	}, &logs
}

func TestSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	job, _ := testJob(t, dir)
	job.ConfigPath = write(t, dir, "girih.toml", "symmetry = 3\nsize = 300\nformat = \"svg\"\n")

	cfg, doc, err := Settings(job)
	require.NoError(t, err)
	assert.Equal(t, "star", doc.Name)
	assert.Equal(t, 6, cfg.Symmetry)   // document beats config
	assert.Equal(t, 300.0, cfg.Size)   // document leaves size alone
	assert.Equal(t, "svg", cfg.Format) // config beats defaults

	job.Overrides = Overrides{Symmetry: 4, Format: "png", Width: 640}
	cfg, _, err = Settings(job)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Symmetry)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, 640, cfg.Width)

	job.Overrides = Overrides{Layers: "grout"}
	_, _, err = Settings(job)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunSVG(t *testing.T) {
	dir := t.TempDir()
	job, logs := testJob(t, dir)
	job.Overrides.Format = config.FormatSVG

	res, err := Run(job)
	require.NoError(t, err)
	require.NoError(t, res.BuildErr)
	assert.Len(t, res.Registry.Points, 8)

	out, err := os.ReadFile(job.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<?xml"))
	assert.Contains(t, string(out), "</svg>")
	assert.Contains(t, logs.String(), "Render: wrote")

	info, err := os.Stat(job.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRunPNG(t *testing.T) {
	dir := t.TempDir()
	job, _ := testJob(t, dir)
	job.Overrides = Overrides{Format: config.FormatPNG, Width: 120, Height: 80, Size: 60}

	_, err := Run(job)
	require.NoError(t, err)

	f, err := os.Open(job.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestRunKeepsGoingOnBadInstruction(t *testing.T) {
	dir := t.TempDir()
	job, logs := testJob(t, dir)
	job.PatternPath = write(t, dir, "broken.txt", "hex1\nsegment,0,99\nline,1,2,3\n")
	job.Overrides.Format = config.FormatSVG

	res, err := Run(job)
	require.NoError(t, err)
	assert.ErrorIs(t, res.BuildErr, construction.ErrPointIndex)
	assert.Len(t, res.Registry.Lines, 1)
	assert.FileExists(t, job.OutputPath)
	assert.Contains(t, logs.String(), "1 skipped")
}

func TestRunMissingPattern(t *testing.T) {
	dir := t.TempDir()
	job, _ := testJob(t, dir)
	job.PatternPath = filepath.Join(dir, "nope.yaml")
	_, err := Run(job)
	assert.Error(t, err)
	assert.NoFileExists(t, job.OutputPath)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	watched := write(t, dir, "star.txt", "hex1\n")
	other := write(t, dir, "other.txt", "")

	w, err := NewWatcher([]string{watched}, 20*time.Millisecond, log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	defer w.Close()

	changed := make(chan string, 4)
	w.OnChange(func(path string) { changed <- path })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("hex2\n"), 0o644))

	select {
	case p := <-changed:
		assert.Equal(t, "star.txt", filepath.Base(p))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
