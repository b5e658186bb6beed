package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBufferFromString(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
		le    LineEnding
	}{
		{"empty", "", 1, LineEndingLF},
		{"single line", "| a |", 1, LineEndingLF},
		{"trailing newline", "| a |\n", 2, LineEndingLF},
		{"crlf", "| a |\r\n|---|\r\n", 3, LineEndingCRLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBufferFromString(tt.text)
			if got := buf.LineCount(); got != tt.lines {
				t.Errorf("LineCount() = %d, want %d", got, tt.lines)
			}
			if got := buf.LineEnding(); got != tt.le {
				t.Errorf("LineEnding() = %v, want %v", got, tt.le)
			}
			if got := buf.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestBufferLineText(t *testing.T) {
	buf := NewBufferFromString("one\ntwo\nthree")
	if got := buf.LineText(1); got != "two" {
		t.Errorf("LineText(1) = %q, want two", got)
	}
	if got := buf.LineText(5); got != "" {
		t.Errorf("LineText(5) = %q, want empty", got)
	}
	if got := buf.LineLen(2); got != 5 {
		t.Errorf("LineLen(2) = %d, want 5", got)
	}
}

func TestBufferTextRange(t *testing.T) {
	buf := NewBufferFromString("one\ntwo\nthree")

	got, err := buf.TextRange(Point{0, 1}, Point{2, 2})
	if err != nil {
		t.Fatalf("TextRange error = %v", err)
	}
	if got != "ne\ntwo\nth" {
		t.Errorf("TextRange = %q", got)
	}

	if _, err := buf.TextRange(Point{2, 0}, Point{0, 0}); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("reversed TextRange error = %v, want ErrRangeInvalid", err)
	}
	if _, err := buf.TextRange(Point{0, 0}, Point{9, 0}); !errors.Is(err, ErrPointOutOfRange) {
		t.Errorf("out of range TextRange error = %v, want ErrPointOutOfRange", err)
	}
}

func TestBufferReplace(t *testing.T) {
	tests := []struct {
		name  string
		start Point
		end   Point
		text  string
		want  string
		after Point
	}{
		{"insert", Point{0, 3}, Point{0, 3}, "!", "one!\ntwo\nthree", Point{0, 4}},
		{"insert lines", Point{1, 0}, Point{1, 0}, "a\nb\n", "one\na\nb\ntwo\nthree", Point{3, 0}},
		{"delete across lines", Point{0, 2}, Point{2, 1}, "", "onhree", Point{0, 2}},
		{"replace", Point{1, 0}, Point{1, 3}, "TWO", "one\nTWO\nthree", Point{1, 3}},
		{"crlf text", Point{0, 0}, Point{0, 0}, "x\r\n", "x\none\ntwo\nthree", Point{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBufferFromString("one\ntwo\nthree")
			end, err := buf.Replace(tt.start, tt.end, tt.text)
			if err != nil {
				t.Fatalf("Replace error = %v", err)
			}
			if got := buf.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if end != tt.after {
				t.Errorf("end = %v, want %v", end, tt.after)
			}
		})
	}
}

func TestBufferReplaceLines(t *testing.T) {
	buf := NewBufferFromString("x\n|a|\n|-|\n|b|\ny")
	if err := buf.ReplaceLines(1, 4, "| a |\n|---|\n| b |\n"); err != nil {
		t.Fatalf("ReplaceLines error = %v", err)
	}
	want := "x\n| a |\n|---|\n| b |\ny"
	if got := buf.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	buf = NewBufferFromString("|a|\n|-|\n|b|")
	if err := buf.ReplaceLines(0, 3, "| a |\n|---|\n| b |\n"); err != nil {
		t.Fatalf("ReplaceLines at end error = %v", err)
	}
	if got := buf.Text(); got != "| a |\n|---|\n| b |" {
		t.Errorf("Text() = %q", got)
	}
}

func TestBufferCRLFRoundTrip(t *testing.T) {
	buf := NewBufferFromString("| a |\r\n| b |\r\n")
	if _, err := buf.Insert(Point{1, 0}, "| new |\n"); err != nil {
		t.Fatal(err)
	}
	want := "| a |\r\n| new |\r\n| b |\r\n"
	if got := buf.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestBufferUndoRedo(t *testing.T) {
	buf := NewBufferFromString("one\ntwo")
	orig := buf.Text()

	if _, err := buf.Replace(Point{0, 0}, Point{1, 3}, "1\n2\n3"); err != nil {
		t.Fatal(err)
	}
	changed := buf.Text()
	if !buf.CanUndo() {
		t.Fatal("CanUndo() = false after edit")
	}

	if _, err := buf.Undo(); err != nil {
		t.Fatalf("Undo error = %v", err)
	}
	if got := buf.Text(); got != orig {
		t.Errorf("after Undo Text() = %q, want %q", got, orig)
	}

	if _, err := buf.Redo(); err != nil {
		t.Fatalf("Redo error = %v", err)
	}
	if got := buf.Text(); got != changed {
		t.Errorf("after Redo Text() = %q, want %q", got, changed)
	}

	buf.Undo()
	if _, err := buf.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("second Undo error = %v, want ErrNothingToUndo", err)
	}
}

func TestBufferHistoryLimit(t *testing.T) {
	buf := NewBuffer(WithHistoryLimit(2))
	for i := 0; i < 5; i++ {
		buf.Insert(Point{0, 0}, "x")
	}
	n := 0
	for buf.CanUndo() {
		buf.Undo()
		n++
	}
	if n != 2 {
		t.Errorf("undo count = %d, want 2", n)
	}
	if got := buf.Text(); got != strings.Repeat("x", 3) {
		t.Errorf("Text() = %q, want xxx", got)
	}
}

func TestBufferRevision(t *testing.T) {
	buf := NewBuffer()
	r1 := buf.RevisionID()
	buf.Insert(Point{}, "a")
	if buf.RevisionID() == r1 {
		t.Error("RevisionID unchanged after edit")
	}
}

func TestBufferClamp(t *testing.T) {
	buf := NewBufferFromString("ab\ncdef")
	tests := []struct {
		in   Point
		want Point
	}{
		{Point{0, 9}, Point{0, 2}},
		{Point{-1, 3}, Point{0, 0}},
		{Point{7, 0}, Point{1, 4}},
		{Point{1, -2}, Point{1, 0}},
	}
	for _, tt := range tests {
		if got := buf.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDetectLineEnding(t *testing.T) {
	if DetectLineEnding("a\r\nb\r\nc\n") != LineEndingCRLF {
		t.Error("expected CRLF")
	}
	if DetectLineEnding("a\nb") != LineEndingLF {
		t.Error("expected LF")
	}
	if DetectLineEnding("") != LineEndingLF {
		t.Error("expected LF for empty text")
	}
}

func TestChangeType(t *testing.T) {
	tests := []struct {
		c    Change
		want ChangeType
	}{
		{Change{NewText: "a"}, ChangeInsert},
		{Change{OldText: "a"}, ChangeDelete},
		{Change{OldText: "a", NewText: "b"}, ChangeReplace},
	}
	for _, tt := range tests {
		if got := tt.c.Type(); got != tt.want {
			t.Errorf("Type() = %v, want %v", got, tt.want)
		}
	}
}
