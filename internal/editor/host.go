package editor

import (
	"github.com/dshills/eztable/internal/engine/buffer"
)

// Host is the editor surface table commands act on.
type Host interface {
	// Cursor returns the current cursor position.
	Cursor() buffer.Point

	// SetCursor moves the cursor on behalf of a command.
	SetCursor(p buffer.Point)

	// LineCount returns the number of lines.
	LineCount() int

	// LineText returns the text of a line without its terminator.
	LineText(line int) string

	// TextRange returns the text between two points.
	TextRange(from, to buffer.Point) (string, error)

	// Replace replaces the text between two points.
	Replace(from, to buffer.Point, text string) error
}

// Notifier lets a tracker follow cursor movement.
type Notifier interface {
	// OnCursorMoved registers fn and returns a function that removes it.
	OnCursorMoved(fn func(from, to buffer.Point, programmatic bool)) (cancel func(), err error)
}

// CommandRunner is implemented by hosts that report cursor moves made
// inside fn as programmatic.
type CommandRunner interface {
	RunCommand(fn func())
}
