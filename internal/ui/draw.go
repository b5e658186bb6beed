package ui

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Draw renders the visible lines and the status line.
func (e *Editor) Draw() {
	doc := e.app.Document()
	width, height := e.screen.Size()
	rows := height - 1
	if rows < 1 || width < 1 {
		return
	}

	cursor := doc.Cursor()
	e.scroll(cursor.Line, rows)
	e.adjustLeft(doc.LineText(cursor.Line), cursor.Column, width)

	span := e.app.Tracker().Span()
	cursorX := -1

	e.screen.Clear()
	for y := 0; y < rows; y++ {
		line := e.top + y
		if line >= doc.LineCount() {
			break
		}
		style := e.base
		if span.Contains(line) {
			style = e.highlight
			e.fill(y, width, style)
		}
		col := -1
		if line == cursor.Line {
			col = cursor.Column
		}
		if x := e.drawLine(y, width, doc.LineText(line), col, style); x >= 0 {
			cursorX = x
		}
	}

	if cursorX >= 0 {
		e.screen.ShowCursor(cursorX, cursor.Line-e.top)
	} else {
		e.screen.HideCursor()
	}
	if e.palette.open {
		e.drawPalette(height-1, width)
	}
	e.drawStatus(height-1, width)
	e.screen.Show()
}

// scroll keeps line inside the window of rows lines.
func (e *Editor) scroll(line, rows int) {
	if line < e.top {
		e.top = line
	}
	if line >= e.top+rows {
		e.top = line - rows + 1
	}
	if e.top < 0 {
		e.top = 0
	}
}

func (e *Editor) fill(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		e.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawLine draws text one grapheme cluster at a time and returns the
// screen column of byte offset cursorCol, or -1.
func (e *Editor) drawLine(y, width int, text string, cursorCol int, style tcell.Style) int {
	cursorX := -1
	x := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, _ := g.Positions()
		if from == cursorCol {
			cursorX = x - e.left
		}
		runes := g.Runes()
		w := g.Width()
		if runes[0] == '\t' {
			w = e.tabWidth - x%e.tabWidth
			for i := 0; i < w; i++ {
				e.setCell(x+i, y, width, ' ', nil, style)
			}
		} else {
			e.setCell(x, y, width, runes[0], runes[1:], style)
		}
		x += w
	}
	if cursorCol >= len(text) {
		cursorX = x - e.left
	}
	if cursorCol < 0 {
		return -1
	}
	if cursorX >= width {
		cursorX = width - 1
	}
	return cursorX
}

func (e *Editor) setCell(x, y, width int, r rune, comb []rune, style tcell.Style) {
	x -= e.left
	if x < 0 || x >= width {
		return
	}
	e.screen.SetContent(x, y, r, comb, style)
}

// adjustLeft scrolls horizontally so the cursor is visible.
func (e *Editor) adjustLeft(text string, cursorCol, width int) {
	x := e.columnOf(text, cursorCol)
	if x < e.left {
		e.left = x
	}
	if x >= e.left+width {
		e.left = x - width + 1
	}
}

// columnOf returns the display column of byte offset col.
func (e *Editor) columnOf(text string, col int) int {
	if col > len(text) {
		col = len(text)
	}
	x := 0
	g := uniseg.NewGraphemes(text[:col])
	for g.Next() {
		if g.Str() == "\t" {
			x += e.tabWidth - x%e.tabWidth
			continue
		}
		x += g.Width()
	}
	return x
}

func (e *Editor) drawStatus(y, width int) {
	doc := e.app.Document()
	name := "[scratch]"
	if doc.Path() != "" {
		name = filepath.Base(doc.Path())
	}
	c := doc.Cursor()
	left := fmt.Sprintf(" %s  %d:%d  %s ", name, c.Line+1, c.Column+1, e.app.Tracker().State())
	text := left + " " + e.message

	e.fill(y, width, e.status)
	e.drawText(0, y, width, text, e.status)
}

// drawPalette draws the query prompt just above row bottom and the
// matching commands above the prompt, best match nearest.
func (e *Editor) drawPalette(bottom, width int) {
	p := &e.palette
	y := bottom - 1
	e.fill(y, width, e.status)
	e.drawText(0, y, width, "> "+p.query, e.status)
	e.screen.ShowCursor(min(2+uniseg.StringWidth(p.query), width-1), y)

	for i, m := range p.matches {
		if i >= paletteRows || y-1-i < 0 {
			break
		}
		style := e.base
		if i == p.selected {
			style = e.highlight
		}
		e.fill(y-1-i, width, style)
		e.drawText(1, y-1-i, width, m.label+"  ("+m.name+")", style)
	}
}

func (e *Editor) drawText(x, y, width int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() && x < width {
		runes := g.Runes()
		e.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += g.Width()
	}
}
