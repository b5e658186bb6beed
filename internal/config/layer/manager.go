package layer

import (
	"fmt"
	"sort"
	"sync"
)

// Manager holds layers sorted by priority and caches their merge.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer
	merged map[string]any
	dirty  bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// AddLayer adds l, replacing any layer with the same name.
func (m *Manager) AddLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(l.Name)
	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// RemoveLayer removes the named layer and reports whether it existed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(name)
}

func (m *Manager) removeLocked(name string) bool {
	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// Layer returns the named layer or nil.
func (m *Manager) Layer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLocked(name)
}

func (m *Manager) findLocked(name string) *Layer {
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns the layers in ascending priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Merge returns a copy of all layers merged lowest priority first.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMap(m.mergedLocked())
}

func (m *Manager) mergedLocked() map[string]any {
	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, l := range m.layers {
			result = DeepMerge(result, l.Data)
		}
		m.merged = result
		m.dirty = false
	}
	return m.merged
}

// Get returns the effective value at path and the layer that supplied it.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.layers) - 1; i >= 0; i-- {
		if val, ok := GetByPath(m.layers[i].Data, path); ok {
			return val, m.layers[i], true
		}
	}
	return nil, nil, false
}

// GetEffective returns the merged value at path. Unlike Get, tables
// present in several layers are merged key by key.
func (m *Manager) GetEffective(path string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := GetByPath(m.mergedLocked(), path)
	return cloneValue(val), ok
}

// Set stores value at path in the named layer.
func (m *Manager) Set(layerName, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.findLocked(layerName)
	if l == nil {
		return fmt.Errorf("layer not found: %s", layerName)
	}
	if l.ReadOnly {
		return fmt.Errorf("layer is read-only: %s", layerName)
	}
	SetByPath(l.Data, path, value)
	m.dirty = true
	return nil
}

// SetInSession stores value in the session layer, creating it if needed.
func (m *Manager) SetInSession(path string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.findLocked("session")
	if session == nil {
		session = NewLayer("session", SourceSession, PrioritySession)
		m.layers = append(m.layers, session)
	}
	SetByPath(session.Data, path, value)
	m.dirty = true
}

// WhichLayer returns the name of the layer supplying path, or "".
func (m *Manager) WhichLayer(path string) string {
	if _, l, ok := m.Get(path); ok {
		return l.Name
	}
	return ""
}
