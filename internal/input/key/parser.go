package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses an accelerator string into an Event.
//
// Supported formats:
//   - Single character: "a", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+F4", "CmdOrCtrl+Shift+I"
//   - A literal plus: "Ctrl+Plus" or "Ctrl++"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}

	parts := strings.Split(spec, "+")
	if strings.HasSuffix(spec, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	if len(parts) == 1 {
		return parseKey(parts[0], ModNone)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "plus":
		return NewRuneEvent('+', mods), nil
	case "space":
		return NewRuneEvent(' ', mods), nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses an accelerator and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}
