package lua

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/eztable/internal/dispatcher"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/table"
	"github.com/dshills/eztable/internal/tableedit"
)

func newScriptEnv(t *testing.T, text string) (*State, *editor.Document, *bytes.Buffer) {
	t.Helper()
	doc := editor.NewDocumentFromString(text)
	d := dispatcher.NewWithDefaults()
	if err := tableedit.Register(d, tableedit.New(), nil); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	s := NewState(WithOutput(&out))
	t.Cleanup(func() { _ = s.Close() })
	NewModule(Env{Doc: doc, Dispatcher: d}).Register(s)
	return s, doc, &out
}

func TestModuleFormat(t *testing.T) {
	s, _, out := newScriptEnv(t, "")
	err := s.DoString(`
local et = require("eztable")
print(et.format("| a | bb |\n|---|---|\n| ccc | d |"))
print(eztable.format_document("x\n| a |\n|---|\n| b |\ny"))
`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}
	want := "| a   | bb |\n|-----|----|\n| ccc | d  |\n" +
		"x\n| a |\n|---|\n| b |\ny\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestModuleTables(t *testing.T) {
	s, _, out := newScriptEnv(t, "")
	err := s.DoString(`
local ts = eztable.tables("intro\n| a | b |\n|:---|---:|\n| 全 | x |\n")
print(#ts, ts[1].start, ts[1].finish, ts[1].columns)
print(table.concat(ts[1].widths, ","), table.concat(ts[1].aligns, ","))
`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}
	want := "1\t1\t4\t2\n2,1\tleft,right\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestModuleDocumentAndCommands(t *testing.T) {
	s, doc, out := newScriptEnv(t, "| a | bb |\n|---|---|\n| c | d |")
	err := s.DoString(`
eztable.set_cursor(2, 3)
local status = eztable.execute("ezInsertNewRow")
local line, col = eztable.cursor()
print(status, line, col, eztable.line_count())
print(eztable.line(3))
print(eztable.execute("noSuchCommand"))
print(#eztable.commands())
`)
	if err != nil {
		t.Fatalf("DoString error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("output = %q", out.String())
	}
	if lines[0] != "ok\t3\t1\t4" {
		t.Errorf("insert row line = %q", lines[0])
	}
	if lines[1] != "|   |   |" {
		t.Errorf("new row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "error\t") {
		t.Errorf("unknown command = %q", lines[2])
	}
	if lines[3] != "5" {
		t.Errorf("command count = %q", lines[3])
	}
	if got := doc.Cursor(); got != (buffer.Point{Line: 3, Column: 1}) {
		t.Errorf("doc cursor = %v", got)
	}
}

func TestModuleSetText(t *testing.T) {
	s, doc, _ := newScriptEnv(t, "old")
	if err := s.DoString(`eztable.set_text(eztable.format("| x |\n|---|\n| yy |"))`); err != nil {
		t.Fatal(err)
	}
	if got := doc.Text(); got != "| x  |\n|----|\n| yy |" {
		t.Errorf("Text() = %q", got)
	}
	if err := s.DoString(`eztable.line(99)`); err == nil {
		t.Error("line(99) = nil error")
	}
}

func TestModuleWithoutDocument(t *testing.T) {
	s := NewState()
	defer s.Close()
	NewModule(Env{Options: []table.Option{table.WithAlignMode(table.AlignLegacy)}}).Register(s)

	if err := s.DoString(`eztable.text()`); err == nil {
		t.Error("text() without document = nil error")
	}
	if err := s.DoString(`assert(eztable.format("| ab |\n|---|\n| c |") == "| ab |\n|----|\n|  c |")`); err != nil {
		t.Errorf("legacy format: %v", err)
	}
}
