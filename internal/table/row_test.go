package table

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line   string
		ok     bool
		indent string
		cells  []string
		closed bool
	}{
		{"| a | b |", true, "", []string{" a ", " b "}, true},
		{"  |a|bb|", true, "  ", []string{"a", "bb"}, true},
		{"| a | b", true, "", []string{" a ", " b"}, false},
		{"| a |  ", true, "", []string{" a "}, true},
		{"|||", true, "", []string{"", ""}, true},
		{"|", true, "", []string{}, true},
		{"text | a |", false, "", nil, false},
		{"", false, "", nil, false},
	}

	for _, tt := range tests {
		row, ok := Tokenize(tt.line)
		if ok != tt.ok {
			t.Errorf("Tokenize(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if row.Indent != tt.indent {
			t.Errorf("Tokenize(%q) indent = %q, want %q", tt.line, row.Indent, tt.indent)
		}
		if !reflect.DeepEqual(row.Cells, tt.cells) {
			t.Errorf("Tokenize(%q) cells = %q, want %q", tt.line, row.Cells, tt.cells)
		}
		if row.Closed != tt.closed {
			t.Errorf("Tokenize(%q) closed = %v, want %v", tt.line, row.Closed, tt.closed)
		}
	}
}

func TestRowIsSeparator(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"|---|---|", true},
		{"|:---|---:|", true},
		{"| :---: | ---- |", true},
		{"|--|---|", false},
		{"|-|-|", false},
		{"|:-:|---:|", true},
		{"|-:|", false},
		{"|:::|", false},
		{"| a |---|", false},
		{"|---| |", false},
		{"|", false},
	}

	for _, tt := range tests {
		row, _ := Tokenize(tt.line)
		if got := row.IsSeparator(); got != tt.want {
			t.Errorf("IsSeparator(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestCellsBefore(t *testing.T) {
	tests := []struct {
		line   string
		offset int
		want   int
	}{
		{"| a | b |", 0, 0},
		{"| a | b |", 1, 0},
		{"| a | b |", 2, 1},
		{"| a | b |", 4, 1},
		{"| a | b |", 5, 1},
		{"| a | b |", 6, 2},
		{"| a | b |", 9, 2},
		{"| a | b |", 42, 2},
		{"||x|", 3, 1},
		{"  | a |", 3, 0},
		{"", 3, 0},
	}

	for _, tt := range tests {
		if got := CellsBefore(tt.line, tt.offset); got != tt.want {
			t.Errorf("CellsBefore(%q, %d) = %d, want %d", tt.line, tt.offset, got, tt.want)
		}
	}
}

func TestNextCell(t *testing.T) {
	line := "| a | b |"
	tests := []struct {
		offset int
		want   int
		ok     bool
	}{
		{0, 5, true},
		{1, 5, true},
		{4, 9, true},
		{5, 9, true},
		{8, 8, false},
		{9, 9, false},
	}

	for _, tt := range tests {
		got, ok := NextCell(line, tt.offset)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NextCell(%q, %d) = (%d, %v), want (%d, %v)", line, tt.offset, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBreaksInCell(t *testing.T) {
	line := "| a | b |"
	tests := []struct {
		offset int
		want   bool
	}{
		{2, true},
		{6, true},
		{8, true},
		{9, false},
		{-1, false},
	}

	for _, tt := range tests {
		if got := BreaksInCell(line, tt.offset); got != tt.want {
			t.Errorf("BreaksInCell(%q, %d) = %v, want %v", line, tt.offset, got, tt.want)
		}
	}

	if BreaksInCell("| a | b | tail", 11) {
		t.Error("BreaksInCell past the last delimiter should be false")
	}
}

func TestCellCount(t *testing.T) {
	tests := map[string]int{
		"| a | b |": 2,
		"|":         0,
		"":          0,
		"| a |":     1,
	}
	for line, want := range tests {
		if got := CellCount(line); got != want {
			t.Errorf("CellCount(%q) = %d, want %d", line, got, want)
		}
	}
}
