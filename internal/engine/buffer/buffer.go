package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrPointOutOfRange = errors.New("point out of range")
	ErrRangeInvalid    = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	default:
		return "\n"
	}
}

// Buffer holds text as a slice of lines without terminators.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
	history    history
}

// NewBuffer creates a new empty buffer. An empty buffer has one empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		history:    history{max: defaultHistoryLimit},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. The line
// ending style is detected from s unless an option overrides it.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	opts = append([]Option{WithDetectedLineEnding(s)}, opts...)
	b := NewBuffer(opts...)
	b.lines = splitLines(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and lone CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// Read Operations

// Text returns the full buffer content using the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// LineCount returns the number of lines. A buffer ending in a line
// terminator has a final empty line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a specific line (without newline).
// Lines outside the buffer return "".
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line int) int {
	return len(b.LineText(line))
}

// TextRange returns the text between two points, joined with "\n".
func (b *Buffer) TextRange(start, end Point) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkRangeLocked(start, end); err != nil {
		return "", err
	}
	return b.sliceLocked(start, end), nil
}

// Clamp returns the nearest valid point to p.
func (b *Buffer) Clamp(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampLocked(p)
}

func (b *Buffer) clampLocked(p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Point{Line: last, Column: len(b.lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := len(b.lines[p.Line]); p.Column > n {
		p.Column = n
	}
	return p
}

func (b *Buffer) validLocked(p Point) bool {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return false
	}
	return p.Column >= 0 && p.Column <= len(b.lines[p.Line])
}

// checkRangeLocked validates a range. A start or end at column 0 of the line
// just past the last one is not valid; use the end of the last line instead.
func (b *Buffer) checkRangeLocked(start, end Point) error {
	if !b.validLocked(start) || !b.validLocked(end) {
		return ErrPointOutOfRange
	}
	if start.After(end) {
		return ErrRangeInvalid
	}
	return nil
}

func (b *Buffer) sliceLocked(start, end Point) string {
	if start.Line == end.Line {
		return b.lines[start.Line][start.Column:end.Column]
	}
	var sb strings.Builder
	sb.WriteString(b.lines[start.Line][start.Column:])
	for l := start.Line + 1; l < end.Line; l++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[l])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[end.Line][:end.Column])
	return sb.String()
}

// Write Operations

// Replace replaces the text between start and end. It returns the point
// just after the inserted text.
func (b *Buffer) Replace(start, end Point, text string) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRangeLocked(start, end); err != nil {
		return start, err
	}
	c := b.replaceLocked(start, end, normalizeLineEndings(text))
	b.history.push(c)
	return c.NewRange.End, nil
}

// Insert inserts text at p.
func (b *Buffer) Insert(p Point, text string) (Point, error) {
	return b.Replace(p, p, text)
}

// Delete removes the text between start and end.
func (b *Buffer) Delete(start, end Point) error {
	_, err := b.Replace(start, end, "")
	return err
}

// ReplaceLines replaces whole lines [start, end) with text. If end is past
// the last line the replacement runs to the end of the buffer. text should
// carry a terminator for every line it contains, as returned by
// TextRange over a line range.
func (b *Buffer) ReplaceLines(start, end int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || start >= len(b.lines) {
		return ErrRangeInvalid
	}
	from := Point{Line: start}
	to := Point{Line: end}
	text = normalizeLineEndings(text)
	if end >= len(b.lines) {
		last := len(b.lines) - 1
		to = Point{Line: last, Column: len(b.lines[last])}
		text = strings.TrimSuffix(text, "\n")
	}
	b.history.push(b.replaceLocked(from, to, text))
	return nil
}

func (b *Buffer) replaceLocked(start, end Point, text string) Change {
	old := b.sliceLocked(start, end)
	prefix := b.lines[start.Line][:start.Column]
	suffix := b.lines[end.Line][end.Column:]

	inserted := splitLines(text)
	newEnd := Point{Line: start.Line + len(inserted) - 1}
	if len(inserted) == 1 {
		newEnd.Column = start.Column + len(text)
	} else {
		newEnd.Column = len(inserted[len(inserted)-1])
	}

	inserted[0] = prefix + inserted[0]
	inserted[len(inserted)-1] += suffix

	lines := make([]string, 0, len(b.lines)-(end.Line-start.Line)+len(inserted)-1)
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines
	b.revisionID = NewRevisionID()

	return Change{
		Range:    Range{Start: start, End: end},
		NewRange: Range{Start: start, End: newEnd},
		OldText:  old,
		NewText:  text,
		Revision: b.revisionID,
	}
}

// SetText replaces the whole content.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	last := len(b.lines) - 1
	end := Point{Line: last, Column: len(b.lines[last])}
	b.history.push(b.replaceLocked(Point{}, end, normalizeLineEndings(text)))
}

// Undo reverts the most recent change. It returns the inverse change that
// was applied.
func (b *Buffer) Undo() (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.history.popUndo()
	if !ok {
		return Change{}, ErrNothingToUndo
	}
	inv := c.Invert()
	applied := b.replaceLocked(inv.Range.Start, inv.Range.End, inv.NewText)
	b.history.pushRedo(c)
	return applied, nil
}

// Redo reapplies the most recently undone change.
func (b *Buffer) Redo() (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.history.popRedo()
	if !ok {
		return Change{}, ErrNothingToRedo
	}
	applied := b.replaceLocked(c.Range.Start, c.Range.End, c.NewText)
	b.history.pushUndo(applied)
	return applied, nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// CanUndo reports whether there is a change to undo.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history.undo) > 0
}

// CanRedo reports whether there is a change to redo.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.history.redo) > 0
}
