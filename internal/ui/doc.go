// Package ui is a small terminal editor built on tcell. It hosts one
// document, routes keys through the application keymaps so the table
// bindings apply, and highlights the table under the cursor.
package ui
