package loader

import (
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads a YAML settings file.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a loader for path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a loader reading from fsys.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fsys, path: path}
}

// Load implements Loader.
func (l *YAMLLoader) Load() (map[string]any, error) {
	data, ok, err := readFile(l.fs, l.path)
	if !ok || err != nil {
		return nil, err
	}
	return ParseYAML(l.path, data)
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// ParseYAML decodes YAML data; source names it in errors.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if err := yaml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}
	return config, nil
}
