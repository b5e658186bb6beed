package key

import (
	"runtime"
	"strings"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns the accelerator form, like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// CmdOrCtrl returns the primary shortcut modifier for the given GOOS:
// Meta on darwin, Ctrl elsewhere.
func CmdOrCtrl(goos string) Modifier {
	if goos == "darwin" {
		return ModMeta
	}
	return ModCtrl
}

// PlatformCmdOrCtrl is CmdOrCtrl for the running platform.
var PlatformCmdOrCtrl = CmdOrCtrl(runtime.GOOS)

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// "CmdOrCtrl" and "CommandOrControl" resolve for the running platform.
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "cmdorctrl", "commandorcontrol":
		return PlatformCmdOrCtrl
	}
	if m, ok := modifierNameMap[name]; ok {
		return m
	}
	return ModNone
}
