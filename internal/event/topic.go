package event

import "strings"

// Topic represents a hierarchical event type using dot notation.
type Topic string

// Wildcard constants for pattern matching.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more trailing segments.
	WildcardMulti = "**"

	separator = "."
)

// Topics published by the document and the table tracker.
const (
	TopicCursorMoved       Topic = "cursor.moved"
	TopicBufferChanged     Topic = "buffer.changed"
	TopicTableStateChanged Topic = "table.state.changed"
	TopicCommandExecuted   Topic = "command.executed"
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), separator)
}

// IsValid reports whether the topic has no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, s := range t.Segments() {
		if s == "" {
			return false
		}
	}
	return true
}

// Matches reports whether the concrete topic t matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(t.Segments(), pattern.Segments())
}

func matchSegments(topic, pattern []string) bool {
	for i, p := range pattern {
		if p == WildcardMulti {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if p != WildcardSingle && p != topic[i] {
			return false
		}
	}
	return len(topic) == len(pattern)
}
