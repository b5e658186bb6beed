package buffer

import "errors"

// Errors returned by history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

const defaultHistoryLimit = 1000

// history is the undo/redo stack of a buffer. It is guarded by the buffer's
// mutex.
type history struct {
	undo []Change
	redo []Change
	max  int
}

// push records a new change and clears the redo stack.
func (h *history) push(c Change) {
	h.pushUndo(c)
	h.redo = h.redo[:0]
}

func (h *history) pushUndo(c Change) {
	h.undo = append(h.undo, c)
	if h.max > 0 && len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
}

func (h *history) pushRedo(c Change) {
	h.redo = append(h.redo, c)
}

func (h *history) popUndo() (Change, bool) {
	if len(h.undo) == 0 {
		return Change{}, false
	}
	c := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return c, true
}

func (h *history) popRedo() (Change, bool) {
	if len(h.redo) == 0 {
		return Change{}, false
	}
	c := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return c, true
}
