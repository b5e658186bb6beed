package table

import "strings"

// LineSource is read access to a line-addressed text.
type LineSource interface {
	LineCount() int
	LineText(line int) string
}

// Span is a half-open line range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of lines in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span contains no lines.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether line lies inside the span.
func (s Span) Contains(line int) bool {
	return line >= s.Start && line < s.End
}

// Bounds returns the maximal run of consecutive table lines around line.
// If line itself is not a table line, or lies outside the source, the
// returned span is empty and starts at line.
func Bounds(src LineSource, line int) Span {
	n := src.LineCount()
	if line < 0 || line >= n || !IsTableLine(src.LineText(line)) {
		return Span{Start: line, End: line}
	}

	start := line
	for start > 0 && IsTableLine(src.LineText(start-1)) {
		start--
	}
	end := line + 1
	for end < n && IsTableLine(src.LineText(end)) {
		end++
	}
	return Span{Start: start, End: end}
}

// SpanText joins the lines of span with "\n" and a trailing "\n".
func SpanText(src LineSource, s Span) string {
	var sb strings.Builder
	for l := s.Start; l < s.End; l++ {
		sb.WriteString(src.LineText(l))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Locate returns the table block containing line. It returns ErrNotTable if
// the run of table lines around line does not scan as a table.
func Locate(src LineSource, line int) (Span, *Block, error) {
	if line < 0 || line >= src.LineCount() {
		return Span{Start: line, End: line}, nil, ErrLineOutOfRange
	}
	s := Bounds(src, line)
	if s.Empty() {
		return s, nil, ErrNotTable
	}
	b, ok := Scan(SpanText(src, s))
	if !ok {
		return s, nil, ErrNotTable
	}
	return s, b, nil
}

// Lines is a LineSource over a slice of lines.
type Lines []string

// LineCount implements LineSource.
func (l Lines) LineCount() int { return len(l) }

// LineText implements LineSource.
func (l Lines) LineText(line int) string {
	if line < 0 || line >= len(l) {
		return ""
	}
	return l[line]
}

// SplitLines returns text as Lines, without line terminators.
func SplitLines(text string) Lines {
	lines, _, _ := splitLines(text)
	return Lines(lines)
}

// Found is a table located in a larger text.
type Found struct {
	Span  Span
	Block *Block
}

// FindAll returns every table block in text, in order.
func FindAll(text string) []Found {
	src := SplitLines(text)
	var found []Found
	for l := 0; l < src.LineCount(); {
		s := Bounds(src, l)
		if s.Empty() {
			l++
			continue
		}
		if b, ok := Scan(SpanText(src, s)); ok {
			found = append(found, Found{Span: s, Block: b})
		}
		l = s.End
	}
	return found
}

// FormatDocument formats every table block in text and leaves all other
// lines untouched.
func FormatDocument(text string, opts ...Option) string {
	lines, eol, trailing := splitLines(text)
	src := Lines(lines)
	for _, f := range FindAll(text) {
		formatted := SplitLines(Format(SpanText(src, f.Span), opts...))
		copy(lines[f.Span.Start:f.Span.End], formatted)
	}
	return joinLines(lines, eol, trailing)
}
