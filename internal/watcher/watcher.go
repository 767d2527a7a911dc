// Package watcher emits debounced change events for a fixed set of files.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventOp represents the type of file system operation.
type EventOp int

const (
	Create EventOp = iota
	Write
	Remove
	Rename
)

// String returns the string representation of EventOp.
func (op EventOp) String() string {
	switch op {
	case Create:
		return "Create"
	case Write:
		return "Write"
	case Remove:
		return "Remove"
	case Rename:
		return "Rename"
	default:
		return "Unknown"
	}
}

// Event represents a file system change event.
type Event struct {
	Path string
	Op   EventOp
	Time time.Time
}

// Config holds configuration for the file watcher.
type Config struct {
	// Paths lists the files to watch.
	Paths []string
	// Debounce is the quiet window before a change is emitted. Zero
	// means DefaultDebounce.
	Debounce time.Duration
}

// DefaultDebounce is the debounce window used when Config.Debounce is unset.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches individual files for changes and emits debounced
// events. It registers each file's parent directory with fsnotify rather
// than the file itself: editors that save by writing a temp file and
// renaming it over the original would otherwise drop the watch after the
// first save.
type Watcher struct {
	paths    map[string]bool
	debounce time.Duration
	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// NewWatcher creates a watcher for the given files.
func NewWatcher(cfg Config) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	paths := make(map[string]bool, len(cfg.Paths))
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve path %s: %w", p, err)
		}
		paths[abs] = true
	}

	return &Watcher{
		paths:    paths,
		debounce: debounce,
	}, nil
}

// Start begins watching and returns a channel of debounced events. The
// channel is closed when the context is cancelled or the watcher shuts
// down.
func (w *Watcher) Start(ctx context.Context) (<-chan Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.mu.Unlock()

	dirs := make(map[string]bool)
	for path := range w.paths {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	out := make(chan Event, 16)
	go w.eventLoop(ctx, fsw, out)
	return out, nil
}

// Close shuts down the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) eventLoop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Event) {
	defer close(out)

	// Debounce state: map from path to pending event and timer.
	type pending struct {
		event Event
		timer *time.Timer
	}
	pendingEvents := make(map[string]*pending)
	var mu sync.Mutex

	emit := func(evt Event) {
		select {
		case out <- evt:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			// Drain pending timers.
			mu.Lock()
			for _, p := range pendingEvents {
				p.timer.Stop()
			}
			mu.Unlock()
			return

		case fsEvent, ok := <-fsw.Events:
			if !ok {
				return
			}

			// The directory watch reports every entry; keep only the
			// watched files.
			path := filepath.Clean(fsEvent.Name)
			if !w.paths[path] {
				continue
			}

			op, valid := convertOp(fsEvent.Op)
			if !valid {
				continue
			}

			evt := Event{
				Path: path,
				Op:   op,
				Time: time.Now(),
			}

			// Debounce: restart the timer for this path.
			flush := func() {
				mu.Lock()
				e := pendingEvents[path]
				delete(pendingEvents, path)
				mu.Unlock()
				if e != nil {
					emit(e.event)
				}
			}
			mu.Lock()
			if p, exists := pendingEvents[path]; exists {
				p.timer.Stop()
				p.event = evt
				p.timer = time.AfterFunc(w.debounce, flush)
			} else {
				p := &pending{event: evt}
				p.timer = time.AfterFunc(w.debounce, flush)
				pendingEvents[path] = p
			}
			mu.Unlock()

		case _, ok := <-fsw.Errors:
			if !ok {
				return
			}
			// Keep watching through transient errors.
		}
	}
}

func convertOp(op fsnotify.Op) (EventOp, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return Create, true
	case op.Has(fsnotify.Write):
		return Write, true
	case op.Has(fsnotify.Remove):
		return Remove, true
	case op.Has(fsnotify.Rename):
		return Rename, true
	default:
		return 0, false
	}
}
