// Package buffer provides a thread-safe, line-oriented text buffer. It is the
// host-side storage the table commands read from and write back to.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line and point addressing (0-indexed line, byte column)
//   - Range reads and range replacement
//   - Line ending detection and normalization
//   - Revision tracking and an undo/redo history of changes
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("| a |\n|---|\n| b |\n")
//
//	// Read a line
//	line := buf.LineText(0) // "| a |"
//
//	// Replace a range
//	buf.Replace(buffer.Point{Line: 0, Column: 2}, buffer.Point{Line: 0, Column: 3}, "x")
//
//	// Undo it
//	buf.Undo()
//
// Text is stored with "\n" separators. Text returns the content with the
// buffer's line ending restored, so CRLF files round-trip unchanged.
package buffer
