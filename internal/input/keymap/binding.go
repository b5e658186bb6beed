package keymap

import (
	"github.com/dshills/eztable/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the accelerator that triggers this binding.
	// Formats: "Enter", "Tab", "CmdOrCtrl+Shift+I"
	Keys string

	// Action is the command to execute.
	// Examples: "table.newline", "ezFormatTable"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// ParsedBinding is a binding with a pre-parsed key event.
type ParsedBinding struct {
	Binding
	Event key.Event
}

// Matches reports whether ev triggers this binding.
func (pb *ParsedBinding) Matches(ev key.Event) bool {
	return pb.Event.Equals(ev)
}

// Match is the result of a successful lookup.
type Match struct {
	Action  string
	Args    map[string]any
	Keymap  string
	Binding *ParsedBinding
}
