package table

import "strings"

// Block is a parsed table block.
type Block struct {
	// Rows holds every line of the block in order. Rows[1] is the separator.
	Rows []Row

	// LineEnding is the line terminator used by the source text.
	LineEnding string

	// TrailingNewline reports whether the source text ended with LineEnding.
	TrailingNewline bool
}

// Header returns the header row.
func (b *Block) Header() Row {
	return b.Rows[0]
}

// Separator returns the separator row.
func (b *Block) Separator() Row {
	return b.Rows[1]
}

// Body returns the content rows after the separator.
func (b *Block) Body() []Row {
	return b.Rows[2:]
}

// ColumnCount returns the widest cell count over all rows.
func (b *Block) ColumnCount() int {
	return columnCount(b.Rows)
}

// Alignments returns the alignment of each column as marked on the
// separator row.
func (b *Block) Alignments() []Alignment {
	n := b.ColumnCount()
	out := make([]Alignment, n)
	for i := range out {
		out[i] = alignmentOf(b.Separator().Cell(i))
	}
	return out
}

// Scan parses text as a table block. The text must consist of a content
// line, a separator line and at least one further content line, with no
// other lines interleaved. A single trailing line ending is allowed.
func Scan(text string) (*Block, bool) {
	lines, eol, trailing := splitLines(text)
	if len(lines) < 3 {
		return nil, false
	}

	rows := make([]Row, len(lines))
	for i, line := range lines {
		row, ok := Tokenize(line)
		if !ok || row.Len() == 0 {
			return nil, false
		}
		rows[i] = row
	}
	if !rows[1].IsSeparator() {
		return nil, false
	}

	return &Block{Rows: rows, LineEnding: eol, TrailingNewline: trailing}, true
}

// Valid reports whether text is a table block.
func Valid(text string) bool {
	_, ok := Scan(text)
	return ok
}

// splitLines splits text into lines without terminators. It detects "\r\n"
// versus "\n" from the first terminator and strips one trailing terminator.
func splitLines(text string) (lines []string, eol string, trailing bool) {
	eol = "\n"
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		eol = "\r\n"
	}
	if text == "" {
		return nil, eol, false
	}
	if strings.HasSuffix(text, "\n") {
		trailing = true
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
	}
	lines = strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, eol, trailing
}

// joinLines is the inverse of splitLines.
func joinLines(lines []string, eol string, trailing bool) string {
	out := strings.Join(lines, eol)
	if trailing {
		out += eol
	}
	return out
}

func columnCount(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Len() > n {
			n = r.Len()
		}
	}
	return n
}
