package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/eztable/internal/config/layer"
	"github.com/dshills/eztable/internal/config/loader"
)

// Layer names.
const (
	LayerDefaults = "defaults"
	LayerFile     = "file"
	LayerEnv      = "environment"
	LayerArgs     = "arguments"
)

// Config provides merged access to every configuration layer.
type Config struct {
	mu sync.RWMutex

	layers    *layer.Manager
	path      string
	envPrefix string
	environ   func() []string
	fs        loader.FileSystem
}

// Option configures a Config.
type Option func(*Config)

// WithFile sets the settings file to load.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// WithFileSystem replaces the OS file system used to read settings.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// New creates a Config holding only the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewManager(),
		envPrefix: loader.DefaultEnvPrefix,
		environ:   os.Environ,
		fs:        loader.DefaultFS(),
	}
	for _, opt := range opts {
		opt(c)
	}

	defaults := layer.NewLayerWithData(LayerDefaults, layer.SourceBuiltin, layer.PriorityBuiltin, Defaults())
	defaults.ReadOnly = true
	c.layers.AddLayer(defaults)
	c.layers.AddLayer(layer.NewLayer(LayerArgs, layer.SourceArgs, layer.PriorityArgs))
	return c
}

// Load reads the settings file, if any, and the environment.
// A configured file that does not exist is not an error.
func (c *Config) Load() error {
	if c.path != "" {
		if err := c.LoadFile(c.path); err != nil {
			return err
		}
	}
	return c.loadEnv()
}

// LoadFile reads a TOML or YAML settings file into the file layer,
// replacing any previous file layer.
func (c *Config) LoadFile(path string) error {
	l, err := loader.ForPathFS(c.fs, path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return err
	}
	fl := layer.NewLayerWithData(LayerFile, layer.SourceFile, layer.PriorityFile, data)
	fl.Path = path

	c.mu.Lock()
	c.path = path
	c.mu.Unlock()
	c.layers.AddLayer(fl)
	return nil
}

func (c *Config) loadEnv() error {
	data, err := loader.NewEnvLoader(c.envPrefix).WithEnviron(c.environ).Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	c.layers.AddLayer(layer.NewLayerWithData(LayerEnv, layer.SourceEnv, layer.PriorityEnv, data))
	return nil
}

// Path returns the settings file path, if one was configured.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Get returns the effective value at path.
func (c *Config) Get(path string) (any, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	val, ok := c.layers.GetEffective(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	return val, nil
}

// Set overrides path for the rest of the session.
func (c *Config) Set(path string, value any) error {
	if err := checkPath(path); err != nil {
		return err
	}
	c.layers.SetInSession(path, value)
	return nil
}

// SetArg records a command-line override for path.
func (c *Config) SetArg(path string, value any) error {
	if err := checkPath(path); err != nil {
		return err
	}
	return c.layers.Set(LayerArgs, path, value)
}

// Source returns the name of the layer that supplies path.
func (c *Config) Source(path string) string {
	return c.layers.WhichLayer(path)
}

// All returns a merged copy of every setting.
func (c *Config) All() map[string]any {
	return c.layers.Merge()
}

// GetString returns the string at path.
func (c *Config) GetString(path string) (string, error) {
	val, err := c.Get(path)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", mismatch(path, "string", val)
	}
	return s, nil
}

// GetBool returns the bool at path.
func (c *Config) GetBool(path string) (bool, error) {
	val, err := c.Get(path)
	if err != nil {
		return false, err
	}
	b, ok := val.(bool)
	if !ok {
		return false, mismatch(path, "bool", val)
	}
	return b, nil
}

// GetInt returns the integer at path. TOML yields int64 and YAML int;
// both are accepted, as are whole floats.
func (c *Config) GetInt(path string) (int, error) {
	val, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, mismatch(path, "int", val)
}

// GetStringMap returns the string-to-string table at path. Non-string
// values are rejected.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	val, err := c.Get(path)
	if err != nil {
		return nil, err
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil, mismatch(path, "table", val)
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return nil, mismatch(path+"."+k, "string", v)
		}
		out[k] = s
	}
	return out, nil
}

func checkPath(path string) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") || strings.Contains(path, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}

func mismatch(path, want string, got any) error {
	return fmt.Errorf("%w: %s is %T, want %s", ErrTypeMismatch, path, got, want)
}

// DefaultPath returns the user settings file, preferring TOML over YAML
// when both exist. It returns the TOML path when neither exists.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	base := filepath.Join(dir, "eztable")
	for _, name := range []string{"settings.toml", "settings.yaml", "settings.yml"} {
		p := filepath.Join(base, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(base, "settings.toml")
}
