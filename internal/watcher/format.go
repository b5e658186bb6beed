package watcher

import (
	"context"
	"fmt"
	"os"

	"github.com/dshills/eztable/internal/table"
)

// Logger is the logging surface the runner needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// FormatFile formats every table in the file at path and rewrites it
// when the content changed. The file mode is preserved.
func FormatFile(path string, opts ...table.Option) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("format %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("format %s: %w", path, err)
	}
	src := string(data)
	out := table.FormatDocument(src, opts...)
	if out == src {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("format %s: %w", path, err)
	}
	return true, nil
}

// Runner reformats watched files whenever they change. Its own writes
// produce another event, but formatting is idempotent so that second
// pass finds nothing to change and the loop settles.
type Runner struct {
	watcher Watcher
	opts    []table.Option
	log     Logger

	// OnFormat, when set, is called after each handled event.
	OnFormat func(path string, changed bool, err error)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithTableOptions sets the options used to format files.
func WithTableOptions(opts ...table.Option) RunnerOption {
	return func(r *Runner) { r.opts = opts }
}

// NewRunner creates a runner reading events from w.
func NewRunner(w Watcher, opts ...RunnerOption) *Runner {
	r := &Runner{watcher: w, log: nopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run formats each path once, then reformats on every write until ctx
// is cancelled or the watcher's channels close.
func (r *Runner) Run(ctx context.Context, paths ...string) error {
	for _, p := range paths {
		if err := r.watcher.Watch(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		r.handle(p)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-r.watcher.Events():
			if !ok {
				return nil
			}
			if ev.Op.Has(OpWrite) || ev.Op.Has(OpCreate) {
				r.handle(ev.Path)
			}

		case err, ok := <-r.watcher.Errors():
			if !ok {
				return nil
			}
			r.log.Warn("watch error", "error", err)
		}
	}
}

func (r *Runner) handle(path string) {
	changed, err := FormatFile(path, r.opts...)
	switch {
	case err != nil:
		r.log.Warn("format failed", "path", path, "error", err)
	case changed:
		r.log.Info("formatted", "path", path)
	}
	if r.OnFormat != nil {
		r.OnFormat(path, changed, err)
	}
}
