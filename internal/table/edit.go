package table

import "strings"

// Skeleton is the empty two-column table inserted by the insert-table
// command.
const Skeleton = "|   |   |\n|---|---|\n|   |   |\n"

// emptyCell is the raw content of a freshly inserted cell.
const emptyCell = "   "

// separatorCell is the raw content of a freshly inserted separator cell.
const separatorCell = "---"

// NewRow returns a blank row with n empty cells and no line ending.
func NewRow(n int) string {
	return string(Delimiter) + strings.Repeat(emptyCell+string(Delimiter), n)
}

// InsertColumn inserts an empty cell at index on every table line of text,
// so the new cell becomes column index. The second line receives a
// separator cell instead. Lines with fewer than index cells, and lines that
// are not table lines, are left unchanged. The result is not re-rendered.
func InsertColumn(text string, index int) string {
	return mapRows(text, func(i int, r Row) (Row, bool) {
		if index < 0 || index > r.Len() {
			return r, false
		}
		cell := emptyCell
		if i == 1 {
			cell = separatorCell
		}
		cells := make([]string, 0, r.Len()+1)
		cells = append(cells, r.Cells[:index]...)
		cells = append(cells, cell)
		cells = append(cells, r.Cells[index:]...)
		r.Cells = cells
		return r, true
	})
}

// DeleteColumn removes the cell at index from every table line of text.
// A line is left unchanged if it has no cell at index or if that cell is
// its only one. The result is not re-rendered.
func DeleteColumn(text string, index int) string {
	return mapRows(text, func(_ int, r Row) (Row, bool) {
		if index < 0 || index >= r.Len() || r.Len() == 1 {
			return r, false
		}
		cells := make([]string, 0, r.Len()-1)
		cells = append(cells, r.Cells[:index]...)
		cells = append(cells, r.Cells[index+1:]...)
		r.Cells = cells
		return r, true
	})
}

// mapRows applies fn to each table line of text. Lines for which fn reports
// no change keep their original text.
func mapRows(text string, fn func(i int, r Row) (Row, bool)) string {
	lines, eol, trailing := splitLines(text)
	for i, line := range lines {
		row, ok := Tokenize(line)
		if !ok {
			continue
		}
		if row, changed := fn(i, row); changed {
			lines[i] = row.String()
		}
	}
	return joinLines(lines, eol, trailing)
}
