package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/eztable/internal/input/key"
)

// ErrKeymapNotFound is returned when activating an unknown keymap.
var ErrKeymapNotFound = errors.New("keymap not found")

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// active holds activation sequence numbers of active keymaps.
	active map[string]uint64
	seq    uint64
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
		active:  make(map[string]uint64),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced and
// keeps its activation state.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keymaps[km.Name] = parsed
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keymaps, name)
	delete(r.active, name)
}

// Activate makes a registered keymap take part in lookups.
// Activating an already active keymap moves it to the front.
func (r *Registry) Activate(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keymaps[name]; !ok {
		return fmt.Errorf("%w: %s", ErrKeymapNotFound, name)
	}
	r.seq++
	r.active[name] = r.seq
	return nil
}

// Deactivate removes a keymap from lookups. It stays registered.
func (r *Registry) Deactivate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, name)
}

// IsActive reports whether the named keymap is active.
func (r *Registry) IsActive(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.active[name]
	return ok
}

// Get returns a registered keymap by name.
func (r *Registry) Get(name string) *Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if pk, ok := r.keymaps[name]; ok {
		return pk.Keymap
	}
	return nil
}

// Active returns the names of active keymaps in precedence order.
func (r *Registry) Active() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeLocked()
}

func (r *Registry) activeLocked() []string {
	names := make([]string, 0, len(r.active))
	for name := range r.active {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := r.keymaps[names[i]], r.keymaps[names[j]]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return r.active[names[i]] > r.active[names[j]]
	})
	return names
}

// Lookup finds the binding for ev among the active keymaps.
func (r *Registry) Lookup(ev key.Event) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.activeLocked() {
		pk := r.keymaps[name]
		if pb := pk.Lookup(ev); pb != nil {
			return &Match{
				Action:  pb.Action,
				Args:    pb.Args,
				Keymap:  name,
				Binding: pb,
			}, true
		}
	}
	return nil, false
}

// Bindings returns the active bindings for an action, across keymaps,
// in precedence order.
func (r *Registry) Bindings(action string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	for _, name := range r.activeLocked() {
		for _, pb := range r.keymaps[name].ParsedBindings {
			if pb.Action == action {
				out = append(out, pb.Binding)
			}
		}
	}
	return out
}
