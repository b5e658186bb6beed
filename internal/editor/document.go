package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/event"
	"github.com/dshills/eztable/internal/table"
)

// Errors returned by Document.
var (
	// ErrNoPath indicates Save was called on a document without a path.
	ErrNoPath = errors.New("document has no path")
)

const eventSource = "editor.document"

// Document is a text buffer with one cursor and an event bus.
type Document struct {
	mu     sync.Mutex
	buf    *buffer.Buffer
	cursor buffer.Point
	bus    *event.Bus
	path   string

	// commandDepth > 0 while a command is running; cursor moves made
	// during that time are reported as programmatic.
	commandDepth int
}

// Option configures a Document.
type Option func(*Document)

// WithBus sets the event bus the document publishes on.
func WithBus(bus *event.Bus) Option {
	return func(d *Document) {
		d.bus = bus
	}
}

// WithPath sets the file path used by Save.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// NewDocument creates a document over buf.
func NewDocument(buf *buffer.Buffer, opts ...Option) *Document {
	d := &Document{buf: buf}
	for _, opt := range opts {
		opt(d)
	}
	if d.bus == nil {
		d.bus = event.NewBus()
	}
	return d
}

// NewDocumentFromString creates a document holding text.
func NewDocumentFromString(text string, opts ...Option) *Document {
	return NewDocument(buffer.NewBufferFromString(text), opts...)
}

// OpenDocument reads path into a new document.
func OpenDocument(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	opts = append([]Option{WithPath(path)}, opts...)
	return NewDocumentFromString(string(data), opts...), nil
}

// Buffer returns the underlying buffer.
func (d *Document) Buffer() *buffer.Buffer { return d.buf }

// Bus returns the event bus.
func (d *Document) Bus() *event.Bus { return d.bus }

// Path returns the file path, if any.
func (d *Document) Path() string { return d.path }

// Text returns the full document text using the buffer's line ending.
func (d *Document) Text() string { return d.buf.Text() }

// LineCount implements Host.
func (d *Document) LineCount() int { return d.buf.LineCount() }

// LineText implements Host.
func (d *Document) LineText(line int) string { return d.buf.LineText(line) }

// TextRange implements Host.
func (d *Document) TextRange(from, to buffer.Point) (string, error) {
	return d.buf.TextRange(from, to)
}

// Cursor implements Host.
func (d *Document) Cursor() buffer.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor
}

// SetCursor implements Host. Moves made while a command runs are
// published as programmatic.
func (d *Document) SetCursor(p buffer.Point) {
	d.mu.Lock()
	programmatic := d.commandDepth > 0
	d.mu.Unlock()
	d.moveCursor(p, programmatic)
}

// MoveCursor moves the cursor on behalf of the user.
func (d *Document) MoveCursor(p buffer.Point) {
	d.moveCursor(p, false)
}

func (d *Document) moveCursor(p buffer.Point, programmatic bool) {
	p = d.buf.Clamp(p)

	d.mu.Lock()
	from := d.cursor
	d.cursor = p
	d.mu.Unlock()

	_ = d.bus.Publish(context.Background(), event.NewEvent(event.TopicCursorMoved, event.CursorMoved{
		From:         position(from),
		To:           position(p),
		Programmatic: programmatic,
	}, eventSource))
}

// Replace implements Host. The cursor is clamped to the new content.
func (d *Document) Replace(from, to buffer.Point, text string) error {
	end, err := d.buf.Replace(from, to, text)
	if err != nil {
		return err
	}
	d.changed(from.Line, end.Line)
	return nil
}

// ReplaceLines replaces whole lines [start, end) with text.
func (d *Document) ReplaceLines(start, end int, text string) error {
	if err := d.buf.ReplaceLines(start, end, text); err != nil {
		return err
	}
	d.changed(start, end)
	return nil
}

// InsertText types text at the cursor and moves the cursor after it.
func (d *Document) InsertText(text string) error {
	at := d.Cursor()
	end, err := d.buf.Insert(at, text)
	if err != nil {
		return err
	}
	d.changed(at.Line, end.Line)
	d.SetCursor(end)
	return nil
}

// Backspace deletes the character before the cursor, joining lines at
// column 0.
func (d *Document) Backspace() error {
	at := d.Cursor()
	var from buffer.Point
	switch {
	case at.Column > 0:
		line := d.buf.LineText(at.Line)
		from = buffer.Point{Line: at.Line, Column: prevRuneStart(line, at.Column)}
	case at.Line > 0:
		from = buffer.Point{Line: at.Line - 1, Column: d.buf.LineLen(at.Line - 1)}
	default:
		return nil
	}
	if err := d.buf.Delete(from, at); err != nil {
		return err
	}
	d.changed(from.Line, from.Line)
	d.SetCursor(from)
	return nil
}

// SetText replaces the whole document.
func (d *Document) SetText(text string) {
	d.buf.SetText(text)
	d.changed(0, d.buf.LineCount())
}

// Undo reverts the last edit and moves the cursor to it.
func (d *Document) Undo() error {
	c, err := d.buf.Undo()
	if err != nil {
		return err
	}
	d.changed(c.NewRange.Start.Line, c.NewRange.End.Line)
	d.SetCursor(c.NewRange.End)
	return nil
}

// Redo reapplies the last undone edit.
func (d *Document) Redo() error {
	c, err := d.buf.Redo()
	if err != nil {
		return err
	}
	d.changed(c.NewRange.Start.Line, c.NewRange.End.Line)
	d.SetCursor(c.NewRange.End)
	return nil
}

// FormatAll formats every table in the document as one undoable edit.
// It reports whether anything changed.
func (d *Document) FormatAll(opts ...table.Option) (bool, error) {
	n := d.buf.LineCount()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = d.buf.LineText(i)
	}
	text := strings.Join(lines, "\n")
	formatted := table.FormatDocument(text, opts...)
	if formatted == text {
		return false, nil
	}
	cursor := d.Cursor()
	end := buffer.Point{Line: n - 1, Column: d.buf.LineLen(n - 1)}
	if err := d.Replace(buffer.Point{}, end, formatted); err != nil {
		return false, err
	}
	d.SetCursor(cursor)
	return true, nil
}

// Save writes the document to its path. An existing file keeps its
// permission bits; a new one is created 0644.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	mode := os.FileMode(0o644)
	info, err := os.Stat(d.path)
	switch {
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("save %s: %w", d.path, err)
	}
	if err := os.WriteFile(d.path, []byte(d.Text()), mode); err != nil {
		return fmt.Errorf("save %s: %w", d.path, err)
	}
	return os.Chmod(d.path, mode)
}

// RunCommand runs fn with cursor moves marked programmatic.
func (d *Document) RunCommand(fn func()) {
	d.mu.Lock()
	d.commandDepth++
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.commandDepth--
		d.mu.Unlock()
	}()
	fn()
}

// InCommand reports whether a command is running.
func (d *Document) InCommand() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commandDepth > 0
}

// OnCursorMoved implements Notifier.
func (d *Document) OnCursorMoved(fn func(from, to buffer.Point, programmatic bool)) (func(), error) {
	sub, err := d.bus.SubscribeFunc(event.TopicCursorMoved, func(_ context.Context, ev any) error {
		e, ok := ev.(event.Event[event.CursorMoved])
		if !ok {
			return nil
		}
		fn(point(e.Payload.From), point(e.Payload.To), e.Payload.Programmatic)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = d.bus.Unsubscribe(sub) }, nil
}

func (d *Document) changed(start, end int) {
	d.mu.Lock()
	d.cursor = d.buf.Clamp(d.cursor)
	d.mu.Unlock()

	_ = d.bus.Publish(context.Background(), event.NewEvent(event.TopicBufferChanged, event.BufferChanged{
		StartLine: start,
		EndLine:   end,
		Revision:  uint64(d.buf.RevisionID()),
	}, eventSource))
}

func position(p buffer.Point) event.Position {
	return event.Position{Line: p.Line, Column: p.Column}
}

func point(p event.Position) buffer.Point {
	return buffer.Point{Line: p.Line, Column: p.Column}
}
