package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single DoString, DoFile or Call.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a sandboxed gopher-lua state. LState is not goroutine-safe;
// the mutex serializes every call from Go.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	output           io.Writer

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the deadline for each call. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithOutput redirects print.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		s.output = w
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
		output:           os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	s.L = L

	s.sandbox = NewSandbox(L, s.output)
	s.sandbox.Install()
	return s
}

// openSafeLibraries opens only safe Lua standard libraries. io, os,
// debug and channel stay closed.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run(func(L *lua.LState) error { return L.DoString(code) })
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error { return L.DoFile(path) })
}

func (s *State) run(fn func(*lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	ctx := context.Background()
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn(s.L)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// Call calls a global Lua function and returns its results.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	var results []lua.LValue
	err := s.run(func(L *lua.LState) error {
		fnVal := L.GetGlobal(fn)
		if fnVal.Type() != lua.LTFunction {
			return fmt.Errorf("%q is not a function (got %s)", fn, fnVal.Type())
		}
		top := L.GetTop()
		L.Push(fnVal)
		for _, a := range args {
			L.Push(a)
		}
		if err := L.PCall(len(args), lua.MultRet, nil); err != nil {
			return err
		}
		n := L.GetTop() - top
		results = make([]lua.LValue, n)
		for i := 0; i < n; i++ {
			results[i] = L.Get(top + i + 1)
		}
		L.Pop(n)
		return nil
	})
	return results, err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// RegisterModule installs funcs as a global table and as a module
// loadable with require.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
	s.L.PreloadModule(name, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	s.sandbox.Allow(name)
}

// Sandbox returns the sandbox.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
