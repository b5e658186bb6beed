// Package report builds a JSON inspection report of the tables in a
// document and reads fields back out of it.
package report

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/eztable/internal/table"
)

// ErrInvalidReport indicates data that is not a report.
var ErrInvalidReport = errors.New("invalid report")

// Table is one entry of a report.
type Table struct {
	Start      int      // first line, 0-based
	End        int      // line after the last, 0-based
	Columns    int      // widest cell count
	Rows       int      // body rows
	Widths     []int    // display width of each column
	Alignments []string // left, right or center per column
	Header     []string // trimmed header cells
	Formatted  bool     // formatting would not change the block
}

// Build returns the report for text. path is recorded as given.
func Build(path, text string, opts ...table.Option) ([]byte, error) {
	measure := table.Resolve(opts...).Width
	lines := table.SplitLines(text)

	doc := []byte(`{"tables":[]}`)
	doc, err := sjson.SetBytes(doc, "path", path)
	if err != nil {
		return nil, err
	}

	found := table.FindAll(text)
	for _, f := range found {
		obj, err := tableJSON(f, lines, measure, opts)
		if err != nil {
			return nil, fmt.Errorf("table at line %d: %w", f.Span.Start, err)
		}
		if doc, err = sjson.SetRawBytes(doc, "tables.-1", obj); err != nil {
			return nil, err
		}
	}
	return sjson.SetBytes(doc, "count", len(found))
}

func tableJSON(f table.Found, lines table.Lines, measure table.WidthFunc, opts []table.Option) ([]byte, error) {
	b := f.Block
	header := make([]string, b.ColumnCount())
	for i := range header {
		header[i] = b.Header().Cell(i)
	}
	aligns := make([]string, 0, b.ColumnCount())
	for _, a := range b.Alignments() {
		aligns = append(aligns, a.String())
	}
	src := table.SpanText(lines, f.Span)

	fields := []struct {
		path  string
		value any
	}{
		{"start", f.Span.Start},
		{"end", f.Span.End},
		{"columns", b.ColumnCount()},
		{"rows", len(b.Body())},
		{"widths", table.Widths(b, measure)},
		{"alignments", aligns},
		{"header", header},
		{"formatted", table.Format(src, opts...) == src},
	}
	obj := []byte(`{}`)
	var err error
	for _, fl := range fields {
		if obj, err = sjson.SetBytes(obj, fl.path, fl.value); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// Parse reads the tables back out of a report.
func Parse(data []byte) ([]Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidReport
	}
	tables := gjson.GetBytes(data, "tables")
	if !tables.IsArray() {
		return nil, fmt.Errorf("%w: no tables array", ErrInvalidReport)
	}
	var out []Table
	tables.ForEach(func(_, v gjson.Result) bool {
		t := Table{
			Start:     int(v.Get("start").Int()),
			End:       int(v.Get("end").Int()),
			Columns:   int(v.Get("columns").Int()),
			Rows:      int(v.Get("rows").Int()),
			Formatted: v.Get("formatted").Bool(),
		}
		for _, w := range v.Get("widths").Array() {
			t.Widths = append(t.Widths, int(w.Int()))
		}
		for _, a := range v.Get("alignments").Array() {
			t.Alignments = append(t.Alignments, a.String())
		}
		for _, h := range v.Get("header").Array() {
			t.Header = append(t.Header, h.String())
		}
		out = append(out, t)
		return true
	})
	return out, nil
}

// Query returns the raw JSON at a gjson path, or "" when nothing matches.
func Query(data []byte, path string) string {
	return gjson.GetBytes(data, path).Raw
}

// Pretty indents a report for display.
func Pretty(data []byte) []byte {
	return pretty.Pretty(data)
}
