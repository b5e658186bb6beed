package table

import "errors"

// Errors returned by table operations.
var (
	// ErrNotTable indicates the text around a line is not a valid table block.
	ErrNotTable = errors.New("not a table")

	// ErrLineOutOfRange indicates a line number outside the line source.
	ErrLineOutOfRange = errors.New("line out of range")
)
