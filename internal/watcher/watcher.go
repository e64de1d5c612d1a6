package watcher

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/leafcare/internal/config"
	"github.com/blackwell-systems/leafcare/internal/store"
)

// Options configures a Watcher.
type Options struct {
	Paths        Paths
	Aliases      *config.AliasConfig
	PollInterval time.Duration // defaults to config.DefaultPollInterval
}

// Watcher follows the care log and records new entries in the store.
// It reacts to fsnotify write events on the log and also polls on a ticker,
// since some filesystems (network mounts, some editors) never emit events.
type Watcher struct {
	store    *store.Store
	paths    Paths
	resolver *Resolver
	interval time.Duration

	fs     *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu        sync.Mutex // serializes passes
	processed int
	stopOnce  sync.Once
}

// New creates a new Watcher instance.
func New(st *store.Store, opts Options) (*Watcher, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if opts.Paths.Log == "" || opts.Paths.Offset == "" {
		return nil, fmt.Errorf("care log paths must be set")
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	return &Watcher{
		store:    st,
		paths:    opts.Paths,
		resolver: NewResolver(st, opts.Aliases),
		interval: interval,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start processes anything already in the log, then follows it in the
// background until Stop is called.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory: the log may not exist yet, and rotation replaces it.
	dir := filepath.Dir(w.paths.Log)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to create care log directory: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.fs = fsw

	if _, err := w.ProcessOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: initial care log processing: %v\n", err)
	}

	w.wg.Add(1)
	go w.run()

	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.paths.Log) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.process("care log event")
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file watcher error: %v\n", err)
		case <-ticker.C:
			w.process("care log poll")
		case <-w.stopCh:
			w.process("final care log flush")
			return
		}
	}
}

func (w *Watcher) process(what string) {
	if _, err := w.ProcessOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: %s error: %v\n", what, err)
	}
}

// ProcessOnce runs a single pass over the care log and returns the number of
// events recorded.
func (w *Watcher) ProcessOnce() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := ProcessCareLog(w.store, w.paths, w.resolver.Resolve)
	if errors.Is(err, store.ErrPlantNotFound) {
		// A cached plant was removed since it was resolved.
		w.resolver.Reset()
		n, err = ProcessCareLog(w.store, w.paths, w.resolver.Resolve)
	}
	if err != nil {
		return 0, err
	}

	if n > 0 {
		log.Printf("watcher: recorded %d care event(s)", n)
	}
	w.processed += n
	return n, nil
}

// Processed returns the number of events recorded since the watcher was created.
func (w *Watcher) Processed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.processed
}

// Stop halts the watcher and flushes any remaining log entries.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
	})

	if w.fs != nil {
		return w.fs.Close()
	}
	return nil
}
