package buffer

import (
	"fmt"
	"sync/atomic"
)

// Point represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in bytes from the start of the line.
type Point struct {
	Line   int // 0-indexed line number
	Column int // 0-indexed column (byte offset within line)
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// LineStart returns the point at column 0 of line.
func LineStart(line int) Point {
	return Point{Line: line}
}

// Range is a span of text between two points. Start is inclusive, End is
// exclusive.
type Range struct {
	Start Point
	End   Point
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start does not come after End.
func (r Range) IsValid() bool {
	return !r.Start.After(r.End)
}

// LineRange returns the range covering whole lines [start, end), including
// the terminator of the last line.
func LineRange(start, end int) Range {
	return Range{Start: LineStart(start), End: LineStart(end)}
}

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
