package loader

import (
	"os"
	"time"

	"github.com/dhamidi/ddoc/profile"
)

// Watcher polls a set of paths and reports source files that appeared or
// changed since the previous poll.
type Watcher struct {
	paths    []string
	prof     *profile.Profile
	interval time.Duration
	modTimes map[string]time.Time
	stopCh   chan struct{}
}

func NewWatcher(paths []string, prof *profile.Profile, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		paths:    paths,
		prof:     prof,
		interval: interval,
		modTimes: make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// Poll returns the files that are new or modified since the last call,
// in path order. The first call returns every file.
func (w *Watcher) Poll() ([]string, error) {
	files, err := Discover(w.paths, w.prof)
	if err != nil {
		return nil, err
	}

	current := make(map[string]bool, len(files))
	var changed []string
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		current[path] = true
		last, known := w.modTimes[path]
		if !known || info.ModTime().After(last) {
			w.modTimes[path] = info.ModTime()
			changed = append(changed, path)
		}
	}
	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
		}
	}
	return changed, nil
}

// Run calls fn with each non-empty batch of changes until Stop is called.
func (w *Watcher) Run(fn func(changed []string)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		changed, err := w.Poll()
		if err != nil {
			return err
		}
		if len(changed) > 0 {
			fn(changed)
		}
		select {
		case <-w.stopCh:
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}
