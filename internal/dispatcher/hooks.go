package dispatcher

import (
	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
)

// PreDispatchHook is called before an action is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	// PreDispatch may modify the action. Returns false to cancel.
	PreDispatch(action *handler.Action, host editor.Host) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	// PostDispatch may inspect or modify the result.
	PostDispatch(action *handler.Action, host editor.Host, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(action *handler.Action, host editor.Host) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(action *handler.Action, host editor.Host) bool {
	return f(action, host)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(action *handler.Action, host editor.Host, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(action *handler.Action, host editor.Host, result *handler.Result) {
	f(action, host, result)
}

// Logger is the subset of the application logger the dispatcher uses.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// LoggingHook logs every dispatch and every failure. Failures never reach
// the host; this hook is where they surface.
type LoggingHook struct {
	Log Logger
}

// NewLoggingHook creates a new logging hook.
func NewLoggingHook(log Logger) *LoggingHook {
	return &LoggingHook{Log: log}
}

// PostDispatch logs the dispatch result.
func (h *LoggingHook) PostDispatch(action *handler.Action, _ editor.Host, result *handler.Result) {
	if h.Log == nil {
		return
	}
	switch result.Status {
	case handler.StatusError:
		h.Log.Warn("command failed", "command", action.Name, "source", action.Source, "error", result.Error)
	default:
		h.Log.Debug("command done", "command", action.Name, "status", result.Status.String(), "message", result.Message)
	}
}
