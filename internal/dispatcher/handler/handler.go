// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"github.com/dshills/eztable/internal/editor"
)

// Action is a named request to run a command.
type Action struct {
	// Name is the command name, e.g. "ezFormatTable" or "table.newline".
	Name string

	// Args are optional command arguments.
	Args map[string]any

	// Source records what triggered the action: "key", "menu", "lua".
	Source string
}

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action against host and returns a result.
	Handle(action Action, host editor.Host) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// Func is the signature shared by function handlers.
type Func func(action Action, host editor.Host) Result

// HandlerFunc is a function adapter for Handler interface.
type HandlerFunc struct {
	fn   Func
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn Func) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn Func, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(action Action, host editor.Host) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(action, host)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; caller must ensure correct routing.
func (f *HandlerFunc) CanHandle(string) bool {
	return true
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "table" in "table.newline").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action Action, host editor.Host) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action Action, host editor.Host) Result {
	return a.h.HandleAction(action, host)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return a.h.CanHandle(actionName)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}

// BaseNamespaceHandler provides a base implementation for namespace handlers.
type BaseNamespaceHandler struct {
	namespace string
	actions   map[string]Func
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]Func),
	}
}

// Register registers a handler function for an action name.
func (h *BaseNamespaceHandler) Register(actionName string, fn Func) {
	h.actions[actionName] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

// HandleAction implements NamespaceHandler.HandleAction.
func (h *BaseNamespaceHandler) HandleAction(action Action, host editor.Host) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(action, host)
}
