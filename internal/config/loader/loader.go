// Package loader reads configuration sources into nested maps.
//
// Settings files are TOML or YAML, chosen by extension. Environment
// variables with a prefix are mapped onto dotted setting paths.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a settings file extension no loader reads.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader reads configuration from a source.
// Load returns nil, nil when the source does not exist.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem abstracts file reads so tests can use fstest.MapFS.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FSAdapter wraps an fs.FS as a FileSystem.
type FSAdapter struct{ FS fs.FS }

// ReadFile implements FileSystem.
func (a FSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(a.FS, path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns the loader matching path's extension.
func ForPath(path string) (Loader, error) {
	return ForPathFS(DefaultFS(), path)
}

// ForPathFS is ForPath over a custom file system.
func ForPathFS(fsys FileSystem, path string) (Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func readFile(fsys FileSystem, path string) ([]byte, bool, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, true, nil
}

// ParseError describes a settings file that failed to parse.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
