// Package watcher reformats Markdown files when they change on disk.
package watcher

import (
	"errors"
	"time"
)

// Errors returned by watchers.
var (
	ErrWatcherClosed   = errors.New("watcher closed")
	ErrPathNotExist    = errors.New("path does not exist")
	ErrAlreadyWatching = errors.New("already watching path")
	ErrNotWatching     = errors.New("path not watched")
)

// Op is a set of file operations.
type Op uint8

// Operations reported by a watcher.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether op includes other.
func (op Op) Has(other Op) bool {
	return op&other != 0
}

// String returns the operations joined by "|".
func (op Op) String() string {
	names := []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	}
	s := ""
	for _, n := range names {
		if op.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "NONE"
	}
	return s
}

// Event is a change to a watched file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Watcher reports changes to individual files.
type Watcher interface {
	Watch(path string) error
	Unwatch(path string) error
	Events() <-chan Event
	Errors() <-chan error
	Close() error
}
