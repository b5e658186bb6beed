package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/event"
)

var _ Host = (*Document)(nil)
var _ Notifier = (*Document)(nil)
var _ CommandRunner = (*Document)(nil)

func TestDocumentHostReads(t *testing.T) {
	d := NewDocumentFromString("| a |\n|---|\n| b |")

	if got := d.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
	if got := d.LineText(1); got != "|---|" {
		t.Errorf("LineText(1) = %q, want %q", got, "|---|")
	}
	got, err := d.TextRange(buffer.LineStart(0), buffer.LineStart(2))
	if err != nil {
		t.Fatalf("TextRange error: %v", err)
	}
	if want := "| a |\n|---|\n"; got != want {
		t.Errorf("TextRange = %q, want %q", got, want)
	}
}

func TestDocumentCursorEvents(t *testing.T) {
	d := NewDocumentFromString("abc\ndef")

	type move struct {
		from, to     buffer.Point
		programmatic bool
	}
	var moves []move
	cancel, err := d.OnCursorMoved(func(from, to buffer.Point, programmatic bool) {
		moves = append(moves, move{from, to, programmatic})
	})
	if err != nil {
		t.Fatalf("OnCursorMoved error: %v", err)
	}

	d.MoveCursor(buffer.Point{Line: 1, Column: 2})
	d.RunCommand(func() {
		d.SetCursor(buffer.Point{Line: 0, Column: 99})
	})

	if len(moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(moves))
	}
	if moves[0].programmatic {
		t.Error("user move reported as programmatic")
	}
	if !moves[1].programmatic {
		t.Error("command move not reported as programmatic")
	}
	if want := (buffer.Point{Line: 0, Column: 3}); moves[1].to != want {
		t.Errorf("clamped cursor = %v, want %v", moves[1].to, want)
	}

	cancel()
	d.MoveCursor(buffer.Point{})
	if len(moves) != 2 {
		t.Error("cancelled subscription still receives moves")
	}
}

func TestDocumentReplacePublishesChange(t *testing.T) {
	d := NewDocumentFromString("one\ntwo\nthree")

	var changes []event.BufferChanged
	_, _ = d.Bus().SubscribeFunc(event.TopicBufferChanged, func(_ context.Context, ev any) error {
		changes = append(changes, ev.(event.Event[event.BufferChanged]).Payload)
		return nil
	})

	d.MoveCursor(buffer.Point{Line: 2, Column: 5})
	if err := d.ReplaceLines(1, 3, "x\n"); err != nil {
		t.Fatalf("ReplaceLines error: %v", err)
	}
	if got, want := d.Text(), "one\nx"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if len(changes) != 1 || changes[0].StartLine != 1 {
		t.Errorf("changes = %+v", changes)
	}
	if c := d.Cursor(); c.Line != 1 || c.Column != 1 {
		t.Errorf("cursor after shrink = %v, want (1:1)", c)
	}
}

func TestDocumentInsertAndBackspace(t *testing.T) {
	d := NewDocumentFromString("ab")
	d.MoveCursor(buffer.Point{Column: 1})

	if err := d.InsertText("é"); err != nil {
		t.Fatalf("InsertText error: %v", err)
	}
	if got := d.Text(); got != "aéb" {
		t.Errorf("Text() = %q, want %q", got, "aéb")
	}
	if c := d.Cursor(); c.Column != 3 {
		t.Errorf("cursor = %v, want column 3", c)
	}

	if err := d.Backspace(); err != nil {
		t.Fatalf("Backspace error: %v", err)
	}
	if got := d.Text(); got != "ab" {
		t.Errorf("Text() after Backspace = %q, want %q", got, "ab")
	}

	if err := d.InsertText("\n"); err != nil {
		t.Fatalf("InsertText error: %v", err)
	}
	if c := d.Cursor(); c != (buffer.Point{Line: 1}) {
		t.Errorf("cursor after newline = %v, want (1:0)", c)
	}
	if err := d.Backspace(); err != nil {
		t.Fatalf("Backspace error: %v", err)
	}
	if got := d.Text(); got != "ab" {
		t.Errorf("Text() after joining = %q, want %q", got, "ab")
	}
}

func TestDocumentUndoRedo(t *testing.T) {
	d := NewDocumentFromString("abc")
	if err := d.Replace(buffer.Point{}, buffer.Point{Column: 1}, "X"); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if err := d.Undo(); err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	if got := d.Text(); got != "abc" {
		t.Errorf("Text() after Undo = %q, want %q", got, "abc")
	}
	if err := d.Redo(); err != nil {
		t.Fatalf("Redo error: %v", err)
	}
	if got := d.Text(); got != "Xbc" {
		t.Errorf("Text() after Redo = %q, want %q", got, "Xbc")
	}
}

func TestDocumentMove(t *testing.T) {
	d := NewDocumentFromString("aé\nxyz")

	d.Move(MotionLineEnd)
	if c := d.Cursor(); c.Column != 3 {
		t.Errorf("LineEnd column = %d, want 3", c.Column)
	}
	d.Move(MotionLeft)
	if c := d.Cursor(); c.Column != 1 {
		t.Errorf("Left over é column = %d, want 1", c.Column)
	}
	d.Move(MotionRight)
	d.Move(MotionRight)
	if c := d.Cursor(); c != (buffer.Point{Line: 1}) {
		t.Errorf("Right at EOL = %v, want (1:0)", c)
	}
	d.Move(MotionLineEnd)
	d.Move(MotionUp)
	if c := d.Cursor(); c != (buffer.Point{Line: 0, Column: 3}) {
		t.Errorf("Up = %v, want (0:3)", c)
	}
	d.Move(MotionLineStart)
	d.Move(MotionLeft)
	if c := d.Cursor(); c != (buffer.Point{}) {
		t.Errorf("Left at origin = %v, want (0:0)", c)
	}
}

func TestDocumentSave(t *testing.T) {
	if err := NewDocumentFromString("x").Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save() error = %v, want ErrNoPath", err)
	}

	path := filepath.Join(t.TempDir(), "t.md")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument error: %v", err)
	}
	if err := d.Replace(buffer.Point{}, buffer.Point{Column: 1}, "z"); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if got, want := string(data), "z\r\nb\r\n"; got != want {
		t.Errorf("saved = %q, want %q", got, want)
	}
}

func TestDocumentSaveKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.md")
	if err := os.WriteFile(path, []byte("| a |\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := OpenDocument(path)
	if err != nil {
		t.Fatalf("OpenDocument error: %v", err)
	}
	if err := d.Replace(buffer.Point{Column: 2}, buffer.Point{Column: 3}, "b"); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("mode = %v, want %v", got, os.FileMode(0o600))
	}

	fresh := filepath.Join(t.TempDir(), "new.md")
	if err := NewDocumentFromString("| a |", WithPath(fresh)).Save(); err != nil {
		t.Fatalf("Save new file error: %v", err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("new file not written: %v", err)
	}
}

func TestDocumentFormatAll(t *testing.T) {
	d := NewDocumentFromString("intro\n| a | bb |\n|---|---|\n| ccc | d |\nend")
	d.MoveCursor(buffer.Point{Line: 4, Column: 2})

	changed, err := d.FormatAll()
	if err != nil {
		t.Fatalf("FormatAll error: %v", err)
	}
	if !changed {
		t.Fatal("FormatAll() = false, want true")
	}
	want := "intro\n| a   | bb |\n|-----|----|\n| ccc | d  |\nend"
	if got := d.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := d.Cursor(); got != (buffer.Point{Line: 4, Column: 2}) {
		t.Errorf("Cursor() = %v, want 4:2", got)
	}

	changed, err = d.FormatAll()
	if err != nil || changed {
		t.Errorf("second FormatAll() = %v, %v; want false, nil", changed, err)
	}
	if err := d.Undo(); err != nil {
		t.Fatalf("Undo error: %v", err)
	}
	if got := d.LineText(1); got != "| a | bb |" {
		t.Errorf("after Undo LineText(1) = %q", got)
	}
}
