package keymap

import (
	"fmt"

	"github.com/dshills/eztable/internal/input/key"
)

// Keymap holds key bindings for a context.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps match.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "lua"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with pre-parsed key events.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding: b,
			Event:   ev,
		})
	}

	return parsed, nil
}

// Lookup returns the last binding in the keymap matching ev.
func (pk *ParsedKeymap) Lookup(ev key.Event) *ParsedBinding {
	for i := len(pk.ParsedBindings) - 1; i >= 0; i-- {
		if pk.ParsedBindings[i].Matches(ev) {
			return &pk.ParsedBindings[i]
		}
	}
	return nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = make(map[string]any, len(b.Args))
			for k, v := range b.Args {
				clone.Bindings[i].Args[k] = v
			}
		}
	}
	return clone
}
