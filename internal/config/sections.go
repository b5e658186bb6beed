package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/eztable/internal/table"
)

// Section accessor methods return snapshot structs. Invalid values fall
// back to the defaults; Validate reports them.

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"table": map[string]any{
			"align":         "markers",
			"ambiguousWide": false,
			"lineBreak":     "<br>",
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"keymap": map[string]any{
			"accelerators": map[string]any{},
		},
		"ui": map[string]any{
			"highlight": "#1f3a5f",
			"tabWidth":  4,
		},
	}
}

// TableConfig holds formatting settings.
type TableConfig struct {
	// Align selects marker-driven or legacy right alignment.
	Align table.AlignMode

	// AmbiguousWide counts East Asian ambiguous characters as two cells.
	AmbiguousWide bool

	// LineBreak is inserted by Enter inside a cell.
	LineBreak string
}

// Options converts the settings to table render options.
func (t TableConfig) Options() []table.Option {
	opts := []table.Option{table.WithAlignMode(t.Align)}
	if t.AmbiguousWide {
		opts = append(opts, table.WithWidthFunc(table.AmbiguousWideWidth))
	}
	return opts
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File receives log output; empty means stderr.
	File string
}

// KeymapConfig holds accelerator overrides keyed by command name.
type KeymapConfig struct {
	Accelerators map[string]string
}

// UIConfig holds terminal editor settings.
type UIConfig struct {
	// Highlight is the background of lines inside the current table.
	Highlight colorful.Color

	// TabWidth is the display width of a tab character.
	TabWidth int
}

// Table returns the table section.
func (c *Config) Table() TableConfig {
	tc := TableConfig{LineBreak: "<br>"}
	if s, err := c.GetString("table.align"); err == nil {
		if m, ok := table.ParseAlignMode(s); ok {
			tc.Align = m
		}
	}
	if b, err := c.GetBool("table.ambiguousWide"); err == nil {
		tc.AmbiguousWide = b
	}
	if s, err := c.GetString("table.lineBreak"); err == nil && s != "" {
		tc.LineBreak = s
	}
	return tc
}

// Logging returns the logging section.
func (c *Config) Logging() LoggingConfig {
	lc := LoggingConfig{Level: "info"}
	if s, err := c.GetString("logging.level"); err == nil && validLevel(s) {
		lc.Level = strings.ToLower(s)
	}
	if s, err := c.GetString("logging.file"); err == nil {
		lc.File = s
	}
	return lc
}

// Keymap returns the keymap section.
func (c *Config) Keymap() KeymapConfig {
	kc := KeymapConfig{Accelerators: map[string]string{}}
	if m, err := c.GetStringMap("keymap.accelerators"); err == nil {
		kc.Accelerators = m
	}
	return kc
}

// UI returns the ui section.
func (c *Config) UI() UIConfig {
	uc := UIConfig{TabWidth: 4}
	uc.Highlight, _ = colorful.Hex("#1f3a5f")
	if s, err := c.GetString("ui.highlight"); err == nil {
		if col, err := colorful.Hex(s); err == nil {
			uc.Highlight = col
		}
	}
	if n, err := c.GetInt("ui.tabWidth"); err == nil && n > 0 {
		uc.TabWidth = n
	}
	return uc
}

// Validate checks every known setting and joins the problems found.
func (c *Config) Validate() error {
	var errs []error
	if s, err := c.GetString("table.align"); err != nil {
		errs = append(errs, err)
	} else if _, ok := table.ParseAlignMode(s); !ok {
		errs = append(errs, fmt.Errorf("%w: table.align %q, want markers or legacy", ErrInvalidValue, s))
	}
	if _, err := c.GetBool("table.ambiguousWide"); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.GetString("table.lineBreak"); err != nil {
		errs = append(errs, err)
	}
	if s, err := c.GetString("logging.level"); err != nil {
		errs = append(errs, err)
	} else if !validLevel(s) {
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidValue, s))
	}
	if _, err := c.GetStringMap("keymap.accelerators"); err != nil {
		errs = append(errs, err)
	}
	if s, err := c.GetString("ui.highlight"); err != nil {
		errs = append(errs, err)
	} else if _, err := colorful.Hex(s); err != nil {
		errs = append(errs, fmt.Errorf("%w: ui.highlight %q: %v", ErrInvalidValue, s, err))
	}
	if n, err := c.GetInt("ui.tabWidth"); err != nil {
		errs = append(errs, err)
	} else if n <= 0 {
		errs = append(errs, fmt.Errorf("%w: ui.tabWidth %d", ErrInvalidValue, n))
	}
	return errors.Join(errs...)
}

func validLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
