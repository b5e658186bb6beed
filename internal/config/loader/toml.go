package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads a TOML settings file.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader creates a loader for path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a loader reading from fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fsys, path: path}
}

// Load implements Loader.
func (l *TOMLLoader) Load() (map[string]any, error) {
	data, ok, err := readFile(l.fs, l.path)
	if !ok || err != nil {
		return nil, err
	}
	return ParseTOML(l.path, data)
}

// ParseTOML decodes TOML data; source names it in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}
