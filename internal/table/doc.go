// Package table implements the text-level model of pipe-delimited Markdown
// tables: recognizing a table block, measuring its columns, re-rendering it
// with uniform padding and performing structural edits on its raw text.
//
// Everything in this package operates on strings and line sources. Nothing
// here holds a reference to an editor, a buffer or a cursor; callers supply
// the text and apply the result.
//
// A table block looks like:
//
//	| Cell | Cell2 |
//	|:-----|------:|
//	| a    |     b |
//
// The first line is the header, the second the separator (every cell is an
// optional ':', three or more '-', and an optional ':'), followed by one or
// more body lines. The separator markers select the column alignment:
//
//   - ":---" and "---" align left
//   - "---:" aligns right
//   - ":---:" centers
//
// Width calculation uses display width, so East Asian wide characters count
// as two columns and combining marks count as zero.
//
// Basic usage:
//
//	blk, ok := table.Scan(text)
//	if ok {
//	    out := table.Format(text)
//	}
//
//	// Structural edits return unformatted text; format afterwards.
//	out = table.Format(table.InsertColumn(text, 1))
package table
