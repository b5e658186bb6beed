// Package layer stacks configuration sources by priority.
//
// Higher priority layers override values from lower priority layers. A
// layer holds a nested map as produced by the file and environment loaders.
package layer

// Layer is one configuration source.
type Layer struct {
	// Name identifies the layer ("defaults", "file", "environment").
	Name string

	// Priority determines merge order; higher overrides lower.
	Priority int

	// Source indicates where the layer came from.
	Source Source

	// Path is the file path for file layers.
	Path string

	// Data holds the values as a nested map.
	Data map[string]any

	// ReadOnly rejects Set calls aimed at this layer.
	ReadOnly bool
}

// NewLayer creates an empty layer.
func NewLayer(name string, source Source, priority int) *Layer {
	return NewLayerWithData(name, source, priority, make(map[string]any))
}

// NewLayerWithData creates a layer holding data.
func NewLayerWithData(name string, source Source, priority int, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     data,
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = cloneMap(l.Data)
	return &c
}

// Source indicates where a layer was loaded from.
type Source uint8

const (
	// SourceBuiltin holds built-in defaults.
	SourceBuiltin Source = iota
	// SourceFile holds a TOML or YAML settings file.
	SourceFile
	// SourceEnv holds EZTABLE_* environment variables.
	SourceEnv
	// SourceArgs holds command-line flag overrides.
	SourceArgs
	// SourceSession holds in-memory overrides made with Set.
	SourceSession
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}

// Standard priorities. Higher values win.
const (
	PriorityBuiltin = 0
	PriorityFile    = 100
	PriorityEnv     = 500
	PriorityArgs    = 600
	PrioritySession = 1000
)

// DefaultPriority returns the standard priority for source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	case SourceSession:
		return PrioritySession
	default:
		return PriorityBuiltin
	}
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}
	dst := make([]any, len(src))
	for i, v := range src {
		dst[i] = cloneValue(v)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}
