package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a set of files. Editors often replace a file
// instead of writing it in place, so the containing directories are watched
// and events are filtered by name.
type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	onChange func(path string)
	log      *log.Logger
	fs       *fsnotify.Watcher
}

// NewWatcher starts watching paths. Bursts of events closer together than
// debounce are reported once.
func NewWatcher(paths []string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]bool),
		debounce: debounce,
		log:      logger,
		fs:       fw,
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}
	return w, nil
}

// OnChange sets the callback invoked with the changed file's path. It runs on
// the goroutine that called Run.
func (w *Watcher) OnChange(callback func(path string)) {
	w.onChange = callback
}

// Run delivers change callbacks until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			pending = ev.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Printf("Watch: %s changed", filepath.Base(pending))
			if w.onChange != nil {
				w.onChange(pending)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("Watch: %v", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
