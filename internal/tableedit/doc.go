// Package tableedit binds the table package to an editor host.
//
// It provides the five table commands (insert table, format table, insert
// row, insert column, delete column), the in-table Enter and Tab actions,
// and a Tracker that switches the "table" keymap on and off as the cursor
// enters and leaves a table. Register wires all of it into a dispatcher.
//
// Every command is a silent no-op when the cursor is not inside a table:
// the result is handler.StatusNoOp and the buffer is not touched.
package tableedit
