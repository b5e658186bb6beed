// Package keymap maps key events to command names.
//
// A Keymap is a named set of bindings. The Registry holds every keymap
// and keeps track of which ones are active; only active keymaps take
// part in Lookup. Keymaps can be activated and deactivated at any time,
// which is how temporary, context-dependent bindings are installed.
//
// When several active keymaps bind the same key, precedence is:
//  1. Keymap priority (higher wins)
//  2. Activation order (most recently activated wins)
package keymap
