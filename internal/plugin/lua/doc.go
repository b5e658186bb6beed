// Package lua runs table scripts in a sandboxed gopher-lua state.
//
// Scripts see a restricted standard library (base, table, string, math)
// and an "eztable" module bound to the open document:
//
//	eztable.format(text)           -> formatted table text
//	eztable.format_document(text)  -> text with every table formatted
//	eztable.tables(text)           -> list of {start, finish, columns, widths, aligns}
//	eztable.text()                 -> document text
//	eztable.set_text(text)
//	eztable.line(n)                -> text of line n (0-based)
//	eztable.line_count()
//	eztable.cursor()               -> line, column (0-based)
//	eztable.set_cursor(line, column)
//	eztable.execute(name)          -> status, message
//	eztable.commands()             -> list of command names
//
// The module is also available through require("eztable").
package lua
