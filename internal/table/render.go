package table

import "strings"

// Alignment is the horizontal alignment of a column.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// String returns the name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// AlignMode selects how cell text is padded.
type AlignMode uint8

const (
	// AlignByMarkers pads according to the separator markers.
	AlignByMarkers AlignMode = iota

	// AlignLegacy pads every cell at the start, right-aligning all text
	// regardless of markers.
	AlignLegacy
)

// ParseAlignMode maps "markers" and "legacy" to an AlignMode.
func ParseAlignMode(s string) (AlignMode, bool) {
	switch strings.ToLower(s) {
	case "", "markers":
		return AlignByMarkers, true
	case "legacy":
		return AlignLegacy, true
	}
	return AlignByMarkers, false
}

// Options configures rendering.
type Options struct {
	Mode  AlignMode
	Width WidthFunc
}

// Option configures Options.
type Option func(*Options)

// WithAlignMode sets the padding mode.
func WithAlignMode(m AlignMode) Option {
	return func(o *Options) {
		o.Mode = m
	}
}

// WithWidthFunc sets the display width function.
func WithWidthFunc(f WidthFunc) Option {
	return func(o *Options) {
		if f != nil {
			o.Width = f
		}
	}
}

// Resolve applies opts to the defaults.
func Resolve(opts ...Option) Options {
	return newOptions(opts)
}

func newOptions(opts []Option) Options {
	o := Options{Mode: AlignByMarkers, Width: DisplayWidth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func alignmentOf(sepCell string) Alignment {
	left := strings.HasPrefix(sepCell, ":")
	right := strings.HasSuffix(sepCell, ":") && len(sepCell) > 1
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	default:
		return AlignLeft
	}
}

// Format re-renders every table line of text with uniform column widths.
// Lines that do not start with the delimiter are copied unchanged and do
// not contribute to widths. If the second line looks like a separator it is
// rendered as one, even when its cells have fewer than three dashes.
//
// Rows with fewer cells than the widest row are padded with empty cells.
func Format(text string, opts ...Option) string {
	o := newOptions(opts)
	lines, eol, trailing := splitLines(text)

	rows := make([]Row, 0, len(lines))
	index := make([]int, len(lines))
	sep := -1
	for i, line := range lines {
		row, ok := Tokenize(line)
		if !ok {
			index[i] = -1
			continue
		}
		if i == 1 && row.looseSeparator() {
			sep = len(rows)
		}
		index[i] = len(rows)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return text
	}

	widths := columnWidths(rows, sep, o.Width)
	aligns := make([]Alignment, len(widths))
	if sep >= 0 {
		for c := range aligns {
			aligns[c] = alignmentOf(rows[sep].Cell(c))
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if index[i] < 0 {
			out[i] = line
			continue
		}
		r := rows[index[i]]
		if index[i] == sep {
			out[i] = renderSeparator(r, widths)
		} else {
			out[i] = renderContent(r, widths, aligns, o)
		}
	}
	return joinLines(out, eol, trailing)
}

// Render formats a scanned block.
func Render(b *Block, opts ...Option) string {
	lines := make([]string, len(b.Rows))
	for i, r := range b.Rows {
		lines[i] = r.String()
	}
	return Format(joinLines(lines, b.LineEnding, b.TrailingNewline), opts...)
}

func renderSeparator(r Row, widths []int) string {
	var sb strings.Builder
	sb.WriteString(r.Indent)
	sb.WriteByte(Delimiter)
	for c, w := range widths {
		cell := r.Cell(c)
		if c >= r.Len() {
			cell = "---"
		}
		if strings.HasPrefix(cell, ":") {
			sb.WriteByte(':')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(strings.Repeat("-", w))
		if strings.HasSuffix(cell, ":") && len(cell) > 1 {
			sb.WriteByte(':')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteByte(Delimiter)
	}
	return sb.String()
}

func renderContent(r Row, widths []int, aligns []Alignment, o Options) string {
	var sb strings.Builder
	sb.WriteString(r.Indent)
	sb.WriteByte(Delimiter)
	for c, w := range widths {
		text := r.Cell(c)
		if text == "" {
			sb.WriteString(strings.Repeat(" ", w+2))
			sb.WriteByte(Delimiter)
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(pad(text, w, aligns[c], o))
		sb.WriteByte(' ')
		sb.WriteByte(Delimiter)
	}
	return sb.String()
}

// pad fills text with spaces up to display width w.
func pad(text string, w int, a Alignment, o Options) string {
	n := w - o.Width(text)
	if n <= 0 {
		return text
	}
	if o.Mode == AlignLegacy {
		a = AlignRight
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", n) + text
	case AlignCenter:
		left := n / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", n-left)
	default:
		return text + strings.Repeat(" ", n)
	}
}
