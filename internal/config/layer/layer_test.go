package layer

import "testing"

func TestLayerClone(t *testing.T) {
	original := NewLayerWithData("file", SourceFile, PriorityFile, map[string]any{
		"table": map[string]any{"lineBreak": "<br>"},
		"list":  []any{"a"},
	})
	cloned := original.Clone()

	original.Data["table"].(map[string]any)["lineBreak"] = "<BR/>"
	original.Data["list"].([]any)[0] = "b"

	if got := cloned.Data["table"].(map[string]any)["lineBreak"]; got != "<br>" {
		t.Errorf("cloned lineBreak = %v, want <br>", got)
	}
	if got := cloned.Data["list"].([]any)[0]; got != "a" {
		t.Errorf("cloned list[0] = %v, want a", got)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceBuiltin, "builtin"},
		{SourceFile, "file"},
		{SourceEnv, "environment"},
		{SourceArgs, "arguments"},
		{SourceSession, "session"},
		{Source(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestPathHelpers(t *testing.T) {
	data := map[string]any{}
	SetByPath(data, "table.align", "legacy")
	SetByPath(data, "logging.level", "debug")

	if got, ok := GetByPath(data, "table.align"); !ok || got != "legacy" {
		t.Errorf("GetByPath(table.align) = %v, %v", got, ok)
	}
	if _, ok := GetByPath(data, "table.align.deeper"); ok {
		t.Error("GetByPath through a scalar should fail")
	}
	if !DeleteByPath(data, "table.align") {
		t.Error("DeleteByPath(table.align) = false, want true")
	}
	if DeleteByPath(data, "table.align") {
		t.Error("second DeleteByPath(table.align) = true, want false")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"table": map[string]any{"align": "markers", "lineBreak": "<br>"},
		"ui":    "plain",
	}
	src := map[string]any{
		"table": map[string]any{"align": "legacy"},
		"ui":    map[string]any{"tabWidth": 2},
	}
	got := DeepMerge(dst, src)

	table := got["table"].(map[string]any)
	if table["align"] != "legacy" || table["lineBreak"] != "<br>" {
		t.Errorf("table = %v", table)
	}
	if ui, ok := got["ui"].(map[string]any); !ok || ui["tabWidth"] != 2 {
		t.Errorf("ui = %v, want map with tabWidth", got["ui"])
	}
}

func TestManagerPriority(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("environment", SourceEnv, PriorityEnv, map[string]any{
		"logging": map[string]any{"level": "debug"},
	}))
	m.AddLayer(NewLayerWithData("defaults", SourceBuiltin, PriorityBuiltin, map[string]any{
		"logging": map[string]any{"level": "info"},
		"table":   map[string]any{"align": "markers"},
	}))

	val, l, ok := m.Get("logging.level")
	if !ok || val != "debug" || l.Name != "environment" {
		t.Errorf("Get(logging.level) = %v, %v, %v", val, l, ok)
	}
	if got := m.WhichLayer("table.align"); got != "defaults" {
		t.Errorf("WhichLayer(table.align) = %q, want defaults", got)
	}

	m.SetInSession("logging.level", "warn")
	merged := m.Merge()
	if got := merged["logging"].(map[string]any)["level"]; got != "warn" {
		t.Errorf("merged logging.level = %v, want warn", got)
	}

	if !m.RemoveLayer("session") {
		t.Fatal("RemoveLayer(session) = false")
	}
	merged = m.Merge()
	if got := merged["logging"].(map[string]any)["level"]; got != "debug" {
		t.Errorf("merged logging.level after remove = %v, want debug", got)
	}
}

func TestManagerSet(t *testing.T) {
	m := NewManager()
	ro := NewLayer("defaults", SourceBuiltin, PriorityBuiltin)
	ro.ReadOnly = true
	m.AddLayer(ro)
	m.AddLayer(NewLayer("file", SourceFile, PriorityFile))

	if err := m.Set("defaults", "a", 1); err == nil {
		t.Error("Set on read-only layer should fail")
	}
	if err := m.Set("missing", "a", 1); err == nil {
		t.Error("Set on missing layer should fail")
	}
	if err := m.Set("file", "a.b", 2); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if val, _, _ := m.Get("a.b"); val != 2 {
		t.Errorf("Get(a.b) = %v, want 2", val)
	}

	m.AddLayer(NewLayer("file", SourceFile, PriorityFile))
	if got := len(m.Layers()); got != 2 {
		t.Errorf("len(Layers()) = %d after replacing file layer, want 2", got)
	}
}

func TestManagerGetEffectiveMergesTables(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayerWithData("file", SourceFile, PriorityFile, map[string]any{
		"keymap": map[string]any{"accelerators": map[string]any{"a": "Ctrl+A"}},
	}))
	m.AddLayer(NewLayerWithData("environment", SourceEnv, PriorityEnv, map[string]any{
		"keymap": map[string]any{"accelerators": map[string]any{"b": "Ctrl+B"}},
	}))

	val, ok := m.GetEffective("keymap.accelerators")
	if !ok {
		t.Fatal("GetEffective(keymap.accelerators) not found")
	}
	acc := val.(map[string]any)
	if acc["a"] != "Ctrl+A" || acc["b"] != "Ctrl+B" {
		t.Errorf("accelerators = %v, want both a and b", acc)
	}

	acc["a"] = "changed"
	val, _ = m.GetEffective("keymap.accelerators")
	if val.(map[string]any)["a"] != "Ctrl+A" {
		t.Error("GetEffective returned shared state")
	}
}
