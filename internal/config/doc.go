// Package config provides layered settings for eztable.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	session     Config.Set
//	arguments   command-line flags
//	environment EZTABLE_* variables
//	file        settings.toml or settings.yaml
//	defaults    built in
//
// Settings are addressed by dotted paths such as "table.lineBreak". Typed
// section accessors (Table, Logging, Keymap, UI) return snapshots.
package config
