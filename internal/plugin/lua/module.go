package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/eztable/internal/dispatcher"
	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/engine/buffer"
	"github.com/dshills/eztable/internal/table"
)

// ModuleName is the global and require name of the table module.
const ModuleName = "eztable"

// Env is what the eztable module operates on. Doc and Dispatcher may be
// nil; the functions that need them then raise an error.
type Env struct {
	Doc        *editor.Document
	Dispatcher *dispatcher.Dispatcher
	Options    []table.Option
}

// Module exposes Env to scripts.
type Module struct {
	env Env
}

// NewModule creates a module over env.
func NewModule(env Env) *Module {
	return &Module{env: env}
}

// Register installs the module into s.
func (m *Module) Register(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"format":          m.format,
		"format_document": m.formatDocument,
		"tables":          m.tables,
		"text":            m.text,
		"set_text":        m.setText,
		"line":            m.line,
		"line_count":      m.lineCount,
		"cursor":          m.cursor,
		"set_cursor":      m.setCursor,
		"execute":         m.execute,
		"commands":        m.commands,
	})
}

// format(text) -> string
func (m *Module) format(L *lua.LState) int {
	L.Push(lua.LString(table.Format(L.CheckString(1), m.env.Options...)))
	return 1
}

// format_document(text) -> string
func (m *Module) formatDocument(L *lua.LState) int {
	L.Push(lua.LString(table.FormatDocument(L.CheckString(1), m.env.Options...)))
	return 1
}

// tables(text) -> {{start, finish, columns, widths, aligns}, ...}
// start and finish are 0-based lines, finish exclusive.
func (m *Module) tables(L *lua.LState) int {
	measure := table.Resolve(m.env.Options...).Width
	list := L.NewTable()
	for _, f := range table.FindAll(L.CheckString(1)) {
		t := L.NewTable()
		t.RawSetString("start", lua.LNumber(f.Span.Start))
		t.RawSetString("finish", lua.LNumber(f.Span.End))
		t.RawSetString("columns", lua.LNumber(f.Block.ColumnCount()))
		widths := L.NewTable()
		for _, w := range table.Widths(f.Block, measure) {
			widths.Append(lua.LNumber(w))
		}
		t.RawSetString("widths", widths)
		aligns := L.NewTable()
		for _, a := range f.Block.Alignments() {
			aligns.Append(lua.LString(a.String()))
		}
		t.RawSetString("aligns", aligns)
		list.Append(t)
	}
	L.Push(list)
	return 1
}

func (m *Module) doc(L *lua.LState) *editor.Document {
	if m.env.Doc == nil {
		L.RaiseError("no document open")
	}
	return m.env.Doc
}

// text() -> string
func (m *Module) text(L *lua.LState) int {
	L.Push(lua.LString(m.doc(L).Text()))
	return 1
}

// set_text(text)
func (m *Module) setText(L *lua.LState) int {
	m.doc(L).SetText(L.CheckString(1))
	return 0
}

// line(n) -> string
func (m *Module) line(L *lua.LState) int {
	d := m.doc(L)
	n := L.CheckInt(1)
	if n < 0 || n >= d.LineCount() {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(d.LineText(n)))
	return 1
}

// line_count() -> int
func (m *Module) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc(L).LineCount()))
	return 1
}

// cursor() -> line, column
func (m *Module) cursor(L *lua.LState) int {
	p := m.doc(L).Cursor()
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Column))
	return 2
}

// set_cursor(line, column)
func (m *Module) setCursor(L *lua.LState) int {
	m.doc(L).MoveCursor(buffer.Point{Line: L.CheckInt(1), Column: L.CheckInt(2)})
	return 0
}

// execute(name) -> status, message
func (m *Module) execute(L *lua.LState) int {
	name := L.CheckString(1)
	if m.env.Dispatcher == nil {
		L.RaiseError("no dispatcher")
		return 0
	}
	res := m.env.Dispatcher.DispatchTo(handler.Action{Name: name, Source: "lua"}, m.doc(L))
	L.Push(lua.LString(res.Status.String()))
	msg := res.Message
	if msg == "" && res.Error != nil {
		msg = res.Error.Error()
	}
	L.Push(lua.LString(msg))
	return 2
}

// commands() -> {name, ...}
func (m *Module) commands(L *lua.LState) int {
	list := L.NewTable()
	if m.env.Dispatcher != nil {
		for _, c := range m.env.Dispatcher.Commands() {
			list.Append(lua.LString(c.Name))
		}
	}
	L.Push(list)
	return 1
}
