package lua

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what scripts can reach.
type Sandbox struct {
	L      *lua.LState
	output io.Writer
	allow  map[string]bool
}

// NewSandbox creates a sandbox for L that prints to output.
func NewSandbox(L *lua.LState, output io.Writer) *Sandbox {
	return &Sandbox{
		L:      L,
		output: output,
		allow: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Install removes loaders and replaces print and require.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installPrint()
	s.installRequire()
}

// Allow lets require load the named module.
func (s *Sandbox) Allow(module string) {
	s.allow[module] = true
}

// Allowed reports whether require may load module.
func (s *Sandbox) Allowed(module string) bool {
	return s.allow[module]
}

func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// installRequire clears the search paths so only preloaded and
// whitelisted modules load.
func (s *Sandbox) installRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	original := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.allow[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
