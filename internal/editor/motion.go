package editor

import (
	"unicode/utf8"

	"github.com/dshills/eztable/internal/engine/buffer"
)

// Motion is a user cursor movement.
type Motion int

// Motions understood by Move.
const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionLineStart
	MotionLineEnd
)

// Move applies a user motion to the cursor. Horizontal motions step by
// whole runes and wrap across line boundaries.
func (d *Document) Move(m Motion) {
	p := d.Cursor()
	line := d.buf.LineText(p.Line)

	switch m {
	case MotionLeft:
		switch {
		case p.Column > 0:
			p.Column = prevRuneStart(line, p.Column)
		case p.Line > 0:
			p.Line--
			p.Column = d.buf.LineLen(p.Line)
		}
	case MotionRight:
		switch {
		case p.Column < len(line):
			p.Column = nextRuneEnd(line, p.Column)
		case p.Line < d.buf.LineCount()-1:
			p = buffer.LineStart(p.Line + 1)
		}
	case MotionUp:
		if p.Line > 0 {
			p.Line--
			p.Column = runeBoundary(d.buf.LineText(p.Line), p.Column)
		}
	case MotionDown:
		if p.Line < d.buf.LineCount()-1 {
			p.Line++
			p.Column = runeBoundary(d.buf.LineText(p.Line), p.Column)
		}
	case MotionLineStart:
		p.Column = 0
	case MotionLineEnd:
		p.Column = len(line)
	}
	d.MoveCursor(p)
}

// prevRuneStart returns the byte offset of the rune ending at col.
func prevRuneStart(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}
	_, size := utf8.DecodeLastRuneInString(line[:col])
	return col - size
}

// nextRuneEnd returns the byte offset just after the rune starting at col.
func nextRuneEnd(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	_, size := utf8.DecodeRuneInString(line[col:])
	return col + size
}

// runeBoundary clamps col into line and backs it up to a rune start.
func runeBoundary(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	for col > 0 && !utf8.RuneStart(line[col]) {
		col--
	}
	return col
}
