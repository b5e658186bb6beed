package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix of eztable environment variables.
const DefaultEnvPrefix = "EZTABLE_"

// EnvLoader maps prefixed environment variables onto setting paths.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix,
// including the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// WithEnviron replaces the environment source, for tests.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":      "logging.level",
		prefix + "ALIGN":          "table.align",
		prefix + "AMBIGUOUS_WIDE": "table.ambiguousWide",
		prefix + "LINE_BREAK":     "table.lineBreak",
		prefix + "HIGHLIGHT":      "ui.highlight",
		prefix + "TAB_WIDTH":      "ui.tabWidth",
	}
}

// AddMapping maps envVar to a setting path explicitly.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load implements Loader. Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts EZTABLE_TABLE_LINE_BREAK to table.lineBreak.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	setting := strings.ToLower(parts[1])
	for _, p := range parts[2:] {
		if p != "" {
			setting += strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + setting
}

func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if (strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}

func setPath(data map[string]any, path string, value any) {
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
