// Package editor defines the host contract table commands operate on and
// Document, the buffer-backed implementation used by every front-end.
//
// A Document owns a text buffer, a single cursor and an event bus. Every
// cursor change publishes event.CursorMoved and every edit publishes
// event.BufferChanged, so trackers can follow the cursor without polling.
package editor
