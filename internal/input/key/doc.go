// Package key provides key event types and accelerator parsing.
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers and timestamp
//
// # Accelerators
//
// Accelerators are written in the menu style used by desktop editors:
//
//	"Enter", "Tab", "a", "CmdOrCtrl+Shift+I", "Ctrl+Enter", "Alt+F4"
//
// CmdOrCtrl resolves to Meta on macOS and to Ctrl everywhere else.
package key
