package settings

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval collapses bursts of writes (editors often write then rename).
const DebounceInterval = 150 * time.Millisecond

// Watcher monitors a settings file and calls back when it changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	target   string
	debounce *time.Timer
	mu       sync.Mutex
	onChange func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directory holding path. Watching the directory
// rather than the file keeps the watch alive across atomic replaces.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		target:   abs,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			// Rename covers the temp-file replace used by writeFileAtomic
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleRefresh()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(DebounceInterval, func() {
		if w.onChange != nil {
			w.onChange()
		}
	})
}

// Stop closes the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
}
