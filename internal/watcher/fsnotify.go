package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher implements Watcher using fsnotify. It watches the
// directory of each file so that editors that save by renaming a temp
// file over the original are still seen.
type FSNotifyWatcher struct {
	mu sync.RWMutex

	watcher *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]int

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFSNotifyWatcher creates a watcher and starts its event loop.
func NewFSNotifyWatcher() (*FSNotifyWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FSNotifyWatcher{
		watcher: fsw,
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		events:  make(chan Event, 100),
		errors:  make(chan error, 10),
		closeCh: make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch starts watching a file.
func (w *FSNotifyWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[abs] {
		return ErrAlreadyWatching
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Unwatch stops watching a file.
func (w *FSNotifyWatcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[abs] {
		return ErrNotWatching
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.watcher.Remove(dir)
	}
	return nil
}

// IsWatching reports whether path is watched.
func (w *FSNotifyWatcher) IsWatching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[abs]
}

// Events returns the event channel.
func (w *FSNotifyWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *FSNotifyWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *FSNotifyWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	close(w.events)
	close(w.errors)
	return w.watcher.Close()
}

func (w *FSNotifyWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *FSNotifyWatcher) handle(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	w.mu.RLock()
	watched := w.files[filepath.Clean(ev.Name)]
	w.mu.RUnlock()
	if !watched {
		return
	}
	select {
	case w.events <- Event{Path: filepath.Clean(ev.Name), Op: op, Time: time.Now()}:
	case <-w.closeCh:
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

var _ Watcher = (*FSNotifyWatcher)(nil)
