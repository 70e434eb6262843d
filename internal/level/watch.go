package level

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long a file must stay quiet before its change is
// reported, so a burst of writes yields one event after the last write.
const DebounceInterval = 100 * time.Millisecond

// Watcher reports changed level descriptors and images in a directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories (not recursively).
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	// pending maps a path to its latest event; a path is reported once it
	// has been quiet for DebounceInterval.
	pending := make(map[string]time.Time)
	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsLevelFile(event.Name) && !isImageFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
			if timer == nil {
				timer = time.NewTimer(DebounceInterval)
				timerC = timer.C
			}
		case now := <-timerC:
			quiet := make([]string, 0, len(pending))
			var next time.Duration
			for name, at := range pending {
				wait := DebounceInterval - now.Sub(at)
				if wait <= 0 {
					quiet = append(quiet, name)
					continue
				}
				if next == 0 || wait < next {
					next = wait
				}
			}
			sort.Strings(quiet)
			for _, name := range quiet {
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if len(pending) == 0 {
				timer, timerC = nil, nil
				continue
			}
			timer.Reset(next)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}
