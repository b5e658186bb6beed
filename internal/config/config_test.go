package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/eztable/internal/table"
)

func noEnv() []string { return nil }

func TestDefaults(t *testing.T) {
	c := New(WithEnviron(noEnv))
	if err := c.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tc := c.Table()
	if tc.Align != table.AlignByMarkers || tc.AmbiguousWide || tc.LineBreak != "<br>" {
		t.Errorf("Table() = %+v", tc)
	}
	if got := c.Logging().Level; got != "info" {
		t.Errorf("Logging().Level = %q, want info", got)
	}
	if got := len(c.Keymap().Accelerators); got != 0 {
		t.Errorf("len(Keymap().Accelerators) = %d, want 0", got)
	}
	ui := c.UI()
	if ui.TabWidth != 4 {
		t.Errorf("UI().TabWidth = %d, want 4", ui.TabWidth)
	}
	if got := ui.Highlight.Hex(); got != "#1f3a5f" {
		t.Errorf("UI().Highlight = %s, want #1f3a5f", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if got := c.Source("table.align"); got != LayerDefaults {
		t.Errorf("Source(table.align) = %q, want %q", got, LayerDefaults)
	}
}

func TestLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	content := `
[table]
align = "legacy"
lineBreak = "<br/>"

[logging]
level = "warn"

[keymap.accelerators]
ezFormatTable = "Ctrl+Alt+F"

[ui]
tabWidth = 2
highlight = "#ff0000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	env := []string{
		"EZTABLE_LOG_LEVEL=debug",
		"EZTABLE_KEYMAP_ACCELERATORS={\"ezDeleteCol\":\"Ctrl+D\"}",
	}
	c := New(WithFile(path), WithEnviron(func() []string { return env }))
	if err := c.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tc := c.Table()
	if tc.Align != table.AlignLegacy || tc.LineBreak != "<br/>" {
		t.Errorf("Table() = %+v", tc)
	}
	if got := c.Logging().Level; got != "debug" {
		t.Errorf("Logging().Level = %q, want debug (env over file)", got)
	}
	if got := c.Source("logging.level"); got != LayerEnv {
		t.Errorf("Source(logging.level) = %q, want %q", got, LayerEnv)
	}
	acc := c.Keymap().Accelerators
	if acc["ezFormatTable"] != "Ctrl+Alt+F" || acc["ezDeleteCol"] != "Ctrl+D" {
		t.Errorf("Accelerators = %v", acc)
	}
	if got := c.UI().TabWidth; got != 2 {
		t.Errorf("UI().TabWidth = %d, want 2", got)
	}
	if got := c.UI().Highlight.Hex(); got != "#ff0000" {
		t.Errorf("UI().Highlight = %s, want #ff0000", got)
	}

	if err := c.SetArg("logging.level", "error"); err != nil {
		t.Fatal(err)
	}
	if got := c.Logging().Level; got != "error" {
		t.Errorf("Logging().Level = %q, want error (args over env)", got)
	}
	if err := c.Set("logging.level", "info"); err != nil {
		t.Fatal(err)
	}
	if got := c.Logging().Level; got != "info" {
		t.Errorf("Logging().Level = %q, want info (session over args)", got)
	}
}

func TestYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("table:\n  ambiguousWide: true\nui:\n  tabWidth: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(WithFile(path), WithEnviron(noEnv))
	if err := c.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !c.Table().AmbiguousWide {
		t.Error("Table().AmbiguousWide = false, want true")
	}
	if got := c.UI().TabWidth; got != 8 {
		t.Errorf("UI().TabWidth = %d, want 8", got)
	}
	if got := len(c.Table().Options()); got != 2 {
		t.Errorf("len(Table().Options()) = %d, want 2", got)
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	c := New(WithFile(filepath.Join(t.TempDir(), "none.toml")), WithEnviron(noEnv))
	if err := c.Load(); err != nil {
		t.Errorf("Load() = %v, want nil", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(bad, []byte("[table\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(WithEnviron(noEnv))

	var perr *ParseError
	if err := c.LoadFile(bad); !errors.As(err, &perr) {
		t.Errorf("LoadFile(bad) = %v, want *ParseError", err)
	}
	if err := c.LoadFile(filepath.Join(dir, "settings.ini")); err == nil {
		t.Error("LoadFile(.ini) = nil, want error")
	}
}

func TestGetErrors(t *testing.T) {
	c := New(WithEnviron(noEnv))

	tests := []struct {
		name string
		get  func() error
		want error
	}{
		{"missing", func() error { _, err := c.Get("table.nothing"); return err }, ErrSettingNotFound},
		{"empty path", func() error { _, err := c.Get(""); return err }, ErrInvalidPath},
		{"double dot", func() error { return c.Set("table..align", 1) }, ErrInvalidPath},
		{"string as bool", func() error { _, err := c.GetBool("table.align"); return err }, ErrTypeMismatch},
		{"bool as string", func() error { _, err := c.GetString("table.ambiguousWide"); return err }, ErrTypeMismatch},
		{"string as int", func() error { _, err := c.GetInt("ui.highlight"); return err }, ErrTypeMismatch},
		{"scalar as map", func() error { _, err := c.GetStringMap("ui.tabWidth"); return err }, ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.get(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	c := New(WithEnviron(noEnv))
	_ = c.Set("table.align", "justify")
	_ = c.Set("ui.highlight", "blue")
	_ = c.Set("ui.tabWidth", 0)

	err := c.Validate()
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Validate() = %v, want ErrInvalidValue", err)
	}

	if got := c.Table().Align; got != table.AlignByMarkers {
		t.Errorf("Table().Align = %v, want fallback to markers", got)
	}
	if got := c.UI().TabWidth; got != 4 {
		t.Errorf("UI().TabWidth = %d, want fallback to 4", got)
	}
}

func TestAllIsACopy(t *testing.T) {
	c := New(WithEnviron(noEnv))
	all := c.All()
	all["table"].(map[string]any)["align"] = "legacy"
	if got, _ := c.GetString("table.align"); got != "markers" {
		t.Errorf("table.align = %q after mutating All(), want markers", got)
	}
}
