package buffer

import "fmt"

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single applied change to the buffer.
// It carries enough information to be inverted for undo.
type Change struct {
	Range    Range  // Original range that was replaced
	NewRange Range  // Range the new text occupies after the change
	OldText  string // Text that was removed
	NewText  string // Text that was added
	Revision RevisionID
}

// Type classifies the change.
func (c Change) Type() ChangeType {
	switch {
	case c.OldText == "":
		return ChangeInsert
	case c.NewText == "":
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	return Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type() {
	case ChangeInsert:
		return fmt.Sprintf("Insert(%s, %q)", c.Range.Start, c.NewText)
	case ChangeDelete:
		return fmt.Sprintf("Delete%s", c.Range)
	default:
		return fmt.Sprintf("Replace%s with %q", c.Range, c.NewText)
	}
}
