package tableedit

import (
	"errors"
	"fmt"

	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/table"
)

// Command names.
const (
	CmdInsertTable  = "ezInsertTable"
	CmdFormatTable  = "ezFormatTable"
	CmdInsertNewRow = "ezInsertNewRow"
	CmdInsertNewCol = "ezInsertNewCol"
	CmdDeleteCol    = "ezDeleteCol"

	// ActionNewline and ActionNextCell are bound to Enter and Tab while
	// the cursor is in a table.
	ActionNewline  = "table.newline"
	ActionNextCell = "table.nextCell"
)

// DefaultLineBreak is inserted by Enter inside a cell.
const DefaultLineBreak = "<br>"

const msgNotInTable = "cursor is not in a table"

// Commands implements the table commands against an editor.Host.
type Commands struct {
	format    []table.Option
	lineBreak string
}

// Option configures Commands.
type Option func(*Commands)

// WithTableOptions sets the rendering options used when re-formatting.
func WithTableOptions(opts ...table.Option) Option {
	return func(c *Commands) {
		c.format = append(c.format, opts...)
	}
}

// WithLineBreak sets the text Enter inserts inside a cell.
func WithLineBreak(s string) Option {
	return func(c *Commands) {
		if s != "" {
			c.lineBreak = s
		}
	}
}

// New creates the table commands.
func New(opts ...Option) *Commands {
	c := &Commands{lineBreak: DefaultLineBreak}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FormatTable re-renders the table under the cursor in place.
func (c *Commands) FormatTable(h editor.Host) handler.Result {
	span, _, err := table.Locate(h, h.Cursor().Line)
	if err != nil {
		return notInTable(err)
	}
	text := table.SpanText(h, span)
	formatted := table.Format(text, c.format...)
	if formatted == text {
		return handler.NoOpWithMessage("table already formatted")
	}
	if err := replaceSpan(h, span, formatted); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithData("start", span.Start).WithData("end", span.End)
}

// InsertTable inserts an empty two-column table at the start of the
// cursor line. It does nothing when the cursor line is already a table
// line.
func (c *Commands) InsertTable(h editor.Host) handler.Result {
	cur := h.Cursor()
	if table.IsTableLine(h.LineText(cur.Line)) {
		return handler.NoOpWithMessage("cursor line already starts a table row")
	}
	at := buffer.LineStart(cur.Line)
	if err := h.Replace(at, at, table.Skeleton); err != nil {
		return handler.Error(err)
	}
	h.SetCursor(buffer.Point{Line: cur.Line + 3, Column: cur.Column})
	return handler.Success().WithData("start", cur.Line)
}

// InsertNewRow inserts a blank row below the cursor line, or below the
// separator when the cursor is on the header, and moves the cursor into
// its first cell.
func (c *Commands) InsertNewRow(h editor.Host) handler.Result {
	cur := h.Cursor()
	if _, _, err := table.Locate(h, cur.Line); err != nil {
		return notInTable(err)
	}

	row := table.NewRow(table.CellCount(h.LineText(cur.Line)))
	target := cur.Line + 1
	if next, ok := table.Tokenize(h.LineText(target)); ok && target < h.LineCount() && next.IsSeparator() {
		target++
	}

	var err error
	if target < h.LineCount() {
		at := buffer.LineStart(target)
		err = h.Replace(at, at, row+"\n")
	} else {
		last := h.LineCount() - 1
		at := buffer.Point{Line: last, Column: len(h.LineText(last))}
		err = h.Replace(at, at, "\n"+row)
	}
	if err != nil {
		return handler.Error(err)
	}
	h.SetCursor(buffer.Point{Line: target, Column: 1})
	return handler.Success().WithData("line", target)
}

// InsertNewCol inserts an empty column after the cells left of the cursor,
// re-renders the table and restores the cursor. With the cursor at the
// start of a cell the new column lands before that cell.
func (c *Commands) InsertNewCol(h editor.Host) handler.Result {
	cur := h.Cursor()
	col := table.CellsBefore(h.LineText(cur.Line), cur.Column)
	return c.rewrite(h, cur, func(text string) string {
		return table.InsertColumn(text, col)
	})
}

// DeleteCol removes the last cell left of the cursor, re-renders the table
// and restores the cursor. Nothing is removed at the start of a row.
func (c *Commands) DeleteCol(h editor.Host) handler.Result {
	cur := h.Cursor()
	col := table.CellsBefore(h.LineText(cur.Line), cur.Column) - 1
	return c.rewrite(h, cur, func(text string) string {
		return table.DeleteColumn(text, col)
	})
}

func (c *Commands) rewrite(h editor.Host, cur buffer.Point, edit func(string) string) handler.Result {
	span, _, err := table.Locate(h, cur.Line)
	if err != nil {
		return notInTable(err)
	}
	text := table.SpanText(h, span)
	out := table.Format(edit(text), c.format...)
	if out == text {
		return handler.NoOpWithMessage("column unchanged")
	}
	if err := replaceSpan(h, span, out); err != nil {
		return handler.Error(err)
	}
	h.SetCursor(cur)
	return handler.Success().WithData("start", span.Start).WithData("end", span.End)
}

// Newline handles Enter inside a table: a line break tag when the cursor
// sits inside a cell, a plain newline otherwise.
func (c *Commands) Newline(h editor.Host) handler.Result {
	cur := h.Cursor()
	text := "\n"
	if table.BreaksInCell(h.LineText(cur.Line), cur.Column) {
		text = c.lineBreak
	}
	if err := h.Replace(cur, cur, text); err != nil {
		return handler.Error(err)
	}
	end := buffer.Point{Line: cur.Line, Column: cur.Column + len(text)}
	if text == "\n" {
		end = buffer.LineStart(cur.Line + 1)
	}
	h.SetCursor(end)
	return handler.Success().WithData("inserted", text)
}

// NextCell handles Tab inside a table: the cursor moves just past the
// next delimiter on the line.
func (c *Commands) NextCell(h editor.Host) handler.Result {
	cur := h.Cursor()
	off, ok := table.NextCell(h.LineText(cur.Line), cur.Column)
	if !ok {
		return handler.NoOpWithMessage("no next cell")
	}
	h.SetCursor(buffer.Point{Line: cur.Line, Column: off})
	return handler.Success()
}

// replaceSpan replaces the lines of span with text, which carries a "\n"
// after every line. A span running to the last buffer line is replaced up
// to the end of that line so no terminator is added.
func replaceSpan(h editor.Host, span table.Span, text string) error {
	from := buffer.LineStart(span.Start)
	to := buffer.LineStart(span.End)
	if span.End >= h.LineCount() {
		last := h.LineCount() - 1
		to = buffer.Point{Line: last, Column: len(h.LineText(last))}
		if len(text) > 0 && text[len(text)-1] == '\n' {
			text = text[:len(text)-1]
		}
	}
	if err := h.Replace(from, to, text); err != nil {
		return fmt.Errorf("replace lines %d-%d: %w", span.Start, span.End, err)
	}
	return nil
}

func notInTable(err error) handler.Result {
	if errors.Is(err, table.ErrNotTable) || errors.Is(err, table.ErrLineOutOfRange) {
		return handler.NoOpWithMessage(msgNotInTable)
	}
	return handler.Error(err)
}
