package table

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WidthFunc measures the display width of a string.
type WidthFunc func(s string) int

// DisplayWidth returns the number of terminal columns s occupies. Wide
// characters count as two columns, combining and zero-width characters as
// zero.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

var ambiguousWide = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = true
	return c
}()

// AmbiguousWideWidth is like DisplayWidth but also counts East Asian
// ambiguous characters (such as '§' or Greek letters in CJK fonts) as wide.
func AmbiguousWideWidth(s string) int {
	return ambiguousWide.StringWidth(s)
}

// Widths returns the maximum display width of each column over all
// non-separator rows of the block. Every width is at least 1.
func Widths(b *Block, measure WidthFunc) []int {
	if measure == nil {
		measure = DisplayWidth
	}
	return columnWidths(b.Rows, 1, measure)
}

// columnWidths measures rows, skipping the row at index sep (pass -1 to
// measure every row). Cells are attributed by their index within the row.
func columnWidths(rows []Row, sep int, measure WidthFunc) []int {
	widths := make([]int, columnCount(rows))
	for i := range widths {
		widths[i] = 1
	}
	for i, r := range rows {
		if i == sep {
			continue
		}
		for c := range r.Cells {
			if w := measure(r.Cell(c)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}
