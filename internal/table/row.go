package table

import (
	"strings"
)

// Delimiter separates cells on a table line.
const Delimiter = '|'

// Row is one tokenized table line.
type Row struct {
	// Indent is the whitespace before the first delimiter.
	Indent string

	// Cells holds the raw text between consecutive delimiters, untrimmed.
	Cells []string

	// Closed reports whether the line ended with a delimiter.
	Closed bool
}

// IsTableLine reports whether the line starts with the delimiter after
// leading whitespace.
func IsTableLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return len(trimmed) > 0 && trimmed[0] == Delimiter
}

// Tokenize splits a table line into cells. It returns false if the line
// does not start with the delimiter.
//
// Text after the last delimiter that is not closed by another delimiter is
// kept as a final cell, so "| a | b" has two cells.
func Tokenize(line string) (Row, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !IsTableLine(line) {
		return Row{}, false
	}

	start := strings.IndexByte(line, Delimiter)
	row := Row{Indent: line[:start]}

	parts := strings.Split(line[start+1:], string(Delimiter))
	last := parts[len(parts)-1]
	if strings.TrimSpace(last) == "" {
		row.Closed = true
		parts = parts[:len(parts)-1]
	}
	row.Cells = parts
	return row, true
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.Cells)
}

// Cell returns the trimmed text of cell i, or "" if the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i])
}

// String rebuilds the raw line from the row. The result is always closed
// with a delimiter.
func (r Row) String() string {
	var sb strings.Builder
	sb.WriteString(r.Indent)
	sb.WriteByte(Delimiter)
	for _, c := range r.Cells {
		sb.WriteString(c)
		sb.WriteByte(Delimiter)
	}
	return sb.String()
}

// IsSeparator reports whether every cell of the row is a separator cell:
// dashes with optional ':' markers, three or more characters in all.
// ":-:" qualifies so that a formatted one-wide aligned column is still
// recognized.
func (r Row) IsSeparator() bool {
	return r.isSeparator(3)
}

// looseSeparator accepts single-dash cells. Format uses it on the second
// line so that hand-typed "|-|-|" rows are widened instead of padded as text.
func (r Row) looseSeparator() bool {
	return r.isSeparator(1)
}

func (r Row) isSeparator(minLen int) bool {
	if len(r.Cells) == 0 {
		return false
	}
	for _, c := range r.Cells {
		if !isSeparatorCell(strings.TrimSpace(c), minLen) {
			return false
		}
	}
	return true
}

func isSeparatorCell(s string, minLen int) bool {
	if len(s) < minLen {
		return false
	}
	dashes := strings.TrimSuffix(strings.TrimPrefix(s, ":"), ":")
	return dashes != "" && strings.Trim(dashes, "-") == ""
}

// CellCount returns the number of cells on a line, counted as the number of
// delimiters minus one. It is used to size a new blank row.
func CellCount(line string) int {
	n := strings.Count(line, string(Delimiter)) - 1
	if n < 0 {
		return 0
	}
	return n
}

// CellsBefore returns the number of cells that end left of the byte offset.
// A delimiter counts only when at least one non-delimiter byte follows it
// before offset, so an offset just after a delimiter or at the line start
// does not count the cell it begins.
func CellsBefore(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	if offset < 0 {
		offset = 0
	}
	n := 0
	prefix := line[:offset]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == Delimiter && i+1 < len(prefix) && prefix[i+1] != Delimiter {
			n++
		}
	}
	return n
}

// NextCell returns the offset just after the first delimiter strictly after
// offset. The second result is false if there is none.
func NextCell(line string, offset int) (int, bool) {
	if offset < -1 {
		offset = -1
	}
	if offset+1 >= len(line) {
		return offset, false
	}
	idx := strings.IndexByte(line[offset+1:], Delimiter)
	if idx < 0 {
		return offset, false
	}
	return offset + 1 + idx + 1, true
}

// BreaksInCell reports whether a newline typed at offset falls inside a cell,
// that is, a delimiter still follows the offset and the offset is not at the
// end of the line.
func BreaksInCell(line string, offset int) bool {
	if offset < 0 || offset >= len(line) {
		return false
	}
	return strings.IndexByte(line[offset:], Delimiter) >= 0
}
