package tableedit

import (
	"context"
	"testing"

	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/event"
	"github.com/dshills/eztable/internal/input/key"
	"github.com/dshills/eztable/internal/input/keymap"
)

const trackerDoc = "text\n| a | b |\n|---|---|\n| c | d |\nend"

func newTracked(t *testing.T) (*editor.Document, *Tracker, *keymap.Registry) {
	t.Helper()
	d := editor.NewDocumentFromString(trackerDoc)
	reg := keymap.NewRegistry()
	tr, err := NewTracker(d, reg, d.Bus())
	if err != nil {
		t.Fatalf("NewTracker error: %v", err)
	}
	if _, err := tr.Attach(d); err != nil {
		t.Fatalf("Attach error: %v", err)
	}
	return d, tr, reg
}

func TestTrackerTransitions(t *testing.T) {
	d, tr, reg := newTracked(t)

	var changes []event.TableStateChanged
	_, _ = d.Bus().SubscribeFunc(event.TopicTableStateChanged, func(_ context.Context, ev any) error {
		changes = append(changes, ev.(event.Event[event.TableStateChanged]).Payload)
		return nil
	})

	if tr.State() != NotInTable || reg.IsActive(KeymapName) {
		t.Fatalf("initial state = %v, keymap active = %v", tr.State(), reg.IsActive(KeymapName))
	}

	d.MoveCursor(buffer.Point{Line: 2, Column: 1})
	if tr.State() != InTable || !reg.IsActive(KeymapName) {
		t.Errorf("in table: state = %v, keymap active = %v", tr.State(), reg.IsActive(KeymapName))
	}
	if s := tr.Span(); s.Start != 1 || s.End != 4 {
		t.Errorf("Span() = %+v, want [1,4)", s)
	}

	d.MoveCursor(buffer.Point{Line: 3})
	if len(changes) != 1 {
		t.Errorf("moving within the table published %d changes, want 1", len(changes))
	}

	d.MoveCursor(buffer.Point{Line: 4})
	if tr.State() != NotInTable || reg.IsActive(KeymapName) {
		t.Errorf("left table: state = %v, keymap active = %v", tr.State(), reg.IsActive(KeymapName))
	}

	if len(changes) != 2 || !changes[0].InTable || changes[1].InTable {
		t.Errorf("changes = %+v", changes)
	}
	if changes[0].StartLine != 1 || changes[0].EndLine != 4 {
		t.Errorf("enter change span = %d-%d, want 1-4", changes[0].StartLine, changes[0].EndLine)
	}
}

func TestTrackerBindings(t *testing.T) {
	d, _, reg := newTracked(t)
	enter := key.NewSpecialEvent(key.KeyEnter, key.ModNone)

	if _, ok := reg.Lookup(enter); ok {
		t.Error("Enter bound outside a table")
	}
	d.MoveCursor(buffer.Point{Line: 1, Column: 2})
	m, ok := reg.Lookup(enter)
	if !ok || m.Action != ActionNewline {
		t.Errorf("Lookup(Enter) = %+v, %v, want %s", m, ok, ActionNewline)
	}
	m, ok = reg.Lookup(key.NewSpecialEvent(key.KeyTab, key.ModNone))
	if !ok || m.Action != ActionNextCell {
		t.Errorf("Lookup(Tab) = %+v, %v, want %s", m, ok, ActionNextCell)
	}
}

func TestTrackerReentrant(t *testing.T) {
	d, tr, _ := newTracked(t)

	var changes []bool
	_, _ = d.Bus().SubscribeFunc(event.TopicTableStateChanged, func(_ context.Context, ev any) error {
		in := ev.(event.Event[event.TableStateChanged]).Payload.InTable
		changes = append(changes, in)
		if in {
			d.RunCommand(func() { d.SetCursor(buffer.Point{}) })
		}
		return nil
	})

	d.MoveCursor(buffer.Point{Line: 1})

	if tr.State() != NotInTable {
		t.Errorf("state = %v, want %v", tr.State(), NotInTable)
	}
	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("changes = %v, want [true false]", changes)
	}
}

func TestTrackerFollowsEdits(t *testing.T) {
	d, tr, _ := newTracked(t)
	d.MoveCursor(buffer.Point{Line: 1})

	c := New()
	var flags []bool
	_, _ = d.OnCursorMoved(func(_, _ buffer.Point, programmatic bool) {
		flags = append(flags, programmatic)
	})

	d.RunCommand(func() { c.InsertNewRow(d) })
	if tr.State() != InTable {
		t.Errorf("state after insert row = %v, want %v", tr.State(), InTable)
	}
	if len(flags) != 1 || !flags[0] {
		t.Errorf("cursor flags = %v, want [true]", flags)
	}
}

func TestStateString(t *testing.T) {
	if InTable.String() != "in-table" || NotInTable.String() != "not-in-table" {
		t.Errorf("State strings = %q, %q", InTable, NotInTable)
	}
}

type warnRecorder struct{ msgs []string }

func (w *warnRecorder) Warn(msg string, _ ...any) { w.msgs = append(w.msgs, msg) }

func TestTrackerReregistersKeymap(t *testing.T) {
	d := editor.NewDocumentFromString(trackerDoc)
	reg := keymap.NewRegistry()
	warns := &warnRecorder{}
	tr, err := NewTracker(d, reg, nil, WithTrackerLogger(warns))
	if err != nil {
		t.Fatalf("NewTracker error: %v", err)
	}
	if _, err := tr.Attach(d); err != nil {
		t.Fatalf("Attach error: %v", err)
	}

	reg.Unregister(KeymapName)
	d.MoveCursor(buffer.Point{Line: 1, Column: 2})
	if tr.State() != InTable || !reg.IsActive(KeymapName) {
		t.Errorf("state = %v, keymap active = %v", tr.State(), reg.IsActive(KeymapName))
	}
	if reg.Get(KeymapName) == nil {
		t.Error("table keymap not registered again")
	}
	if len(warns.msgs) != 0 {
		t.Errorf("warnings = %v, want none", warns.msgs)
	}
}
