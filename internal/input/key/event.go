package key

import (
	"time"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character with no
// command modifiers.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && e.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// String returns the accelerator form of the event, e.g. "Ctrl+Shift+I".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(unicode.ToUpper(e.Rune))
		if e.Rune == ' ' {
			name = "Space"
		}
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared and letters compare case-insensitively.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		unicode.ToLower(e.Rune) == unicode.ToLower(other.Rune) &&
		e.Modifiers == other.Modifiers
}

// Matches checks if this event matches an accelerator string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}
