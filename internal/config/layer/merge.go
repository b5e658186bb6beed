package layer

import "strings"

// DeepMerge merges src into dst and returns dst. Maps merge recursively;
// any other value in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = cloneValue(srcVal)
	}
	return dst
}

// GetByPath looks up a dot-separated path in a nested map.
func GetByPath(data map[string]any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	current := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}
	return current, true
}

// SetByPath stores value at a dot-separated path, creating intermediate
// maps. A non-map value in the way is replaced.
func SetByPath(data map[string]any, path string, value any) {
	if data == nil || path == "" {
		return
	}
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// DeleteByPath removes the value at path and reports whether it existed.
func DeleteByPath(data map[string]any, path string) bool {
	if data == nil || path == "" {
		return false
	}
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return false
		}
		current = next
	}
	key := parts[len(parts)-1]
	if _, ok := current[key]; !ok {
		return false
	}
	delete(current, key)
	return true
}
