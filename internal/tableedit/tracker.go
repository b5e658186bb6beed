package tableedit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/event"
	"github.com/dshills/eztable/internal/input/keymap"
	"github.com/dshills/eztable/internal/table"
)

// KeymapName is the keymap active while the cursor is in a table.
const KeymapName = "table"

// State is the key-binding state of the tracker.
type State uint8

const (
	// NotInTable means the default bindings apply.
	NotInTable State = iota
	// InTable means Enter and Tab are bound to the table actions.
	InTable
)

// String returns the state name.
func (s State) String() string {
	if s == InTable {
		return "in-table"
	}
	return "not-in-table"
}

// NewKeymap returns the bindings installed while in a table.
func NewKeymap() *keymap.Keymap {
	return keymap.NewKeymap(KeymapName).
		WithPriority(10).
		WithSource("default").
		AddBinding(keymap.NewBinding("Enter", ActionNewline).WithDescription("Line break inside a cell")).
		AddBinding(keymap.NewBinding("Tab", ActionNextCell).WithDescription("Move to the next cell"))
}

// Tracker is a two-state machine driven by cursor movement. Entering a
// table activates the table keymap; leaving deactivates it. It never
// edits the buffer, so cursor moves made by commands only update state.
type Tracker struct {
	mu      sync.Mutex
	host    editor.Host
	keymaps *keymap.Registry
	bus     *event.Bus
	logger  Logger

	state State
	span  table.Span

	updating bool
	dirty    bool
}

// Logger receives tracker warnings.
type Logger interface {
	Warn(msg string, kv ...any)
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerLogger sets where keymap activation failures are reported.
func WithTrackerLogger(l Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// NewTracker creates a tracker. The table keymap is registered in
// keymaps if it is not there yet. bus may be nil.
func NewTracker(host editor.Host, keymaps *keymap.Registry, bus *event.Bus, opts ...TrackerOption) (*Tracker, error) {
	if keymaps.Get(KeymapName) == nil {
		if err := keymaps.Register(NewKeymap()); err != nil {
			return nil, err
		}
	}
	t := &Tracker{host: host, keymaps: keymaps, bus: bus}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Attach subscribes the tracker to cursor movement and evaluates the
// current position once.
func (t *Tracker) Attach(n editor.Notifier) (cancel func(), err error) {
	cancel, err = n.OnCursorMoved(func(_, _ buffer.Point, _ bool) {
		t.Update()
	})
	if err != nil {
		return nil, err
	}
	t.Update()
	return cancel, nil
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Span returns the line span of the current table. It is empty when the
// state is NotInTable.
func (t *Tracker) Span() table.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.span
}

// Update re-evaluates the state at the host cursor. A call made while an
// update is in progress, for example from a state-change subscriber that
// moves the cursor, is folded into one more pass of the running update.
func (t *Tracker) Update() State {
	t.mu.Lock()
	if t.updating {
		t.dirty = true
		state := t.state
		t.mu.Unlock()
		return state
	}
	t.updating = true
	t.mu.Unlock()

	for {
		t.evaluate()

		t.mu.Lock()
		if !t.dirty {
			t.updating = false
			state := t.state
			t.mu.Unlock()
			return state
		}
		t.dirty = false
		t.mu.Unlock()
	}
}

func (t *Tracker) evaluate() {
	span, _, err := table.Locate(t.host, t.host.Cursor().Line)
	next := InTable
	if err != nil {
		next = NotInTable
		span = table.Span{}
	}

	if next == InTable && t.State() != InTable {
		if err := t.activate(); err != nil {
			if t.logger != nil {
				t.logger.Warn("table keymap not activated", "error", err, "line", t.host.Cursor().Line)
			}
			next = NotInTable
			span = table.Span{}
		}
	}

	t.mu.Lock()
	prev := t.state
	t.state = next
	t.span = span
	t.mu.Unlock()

	if prev == next {
		return
	}
	if next == NotInTable {
		t.keymaps.Deactivate(KeymapName)
	}
	if t.bus != nil {
		_ = t.bus.Publish(context.Background(), event.NewEvent(event.TopicTableStateChanged, event.TableStateChanged{
			InTable:   next == InTable,
			StartLine: span.Start,
			EndLine:   span.End,
		}, "tableedit.tracker"))
	}
}

// activate turns the table keymap on, registering it again if it was
// removed from the registry.
func (t *Tracker) activate() error {
	err := t.keymaps.Activate(KeymapName)
	if err == nil || !errors.Is(err, keymap.ErrKeymapNotFound) {
		return err
	}
	if err := t.keymaps.Register(NewKeymap()); err != nil {
		return fmt.Errorf("register %s keymap: %w", KeymapName, err)
	}
	return t.keymaps.Activate(KeymapName)
}
