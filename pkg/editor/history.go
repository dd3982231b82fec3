package editor

import "github.com/matzehuels/sketchpad/pkg/shape"

// history holds the committed drawables and the ones that were undone.
// Together they partition every drawable created since the last clear.
type history struct {
	done   []shape.Drawable // display list, back to front
	undone []shape.Drawable // redo stack, top is last
}

// push commits d and discards the redo stack.
func (h *history) push(d shape.Drawable) {
	h.done = append(h.done, d)
	h.undone = nil
}

func (h *history) undo() bool {
	if len(h.done) == 0 {
		return false
	}
	last := h.done[len(h.done)-1]
	h.done[len(h.done)-1] = nil
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, last)
	return true
}

func (h *history) redo() bool {
	if len(h.undone) == 0 {
		return false
	}
	top := h.undone[len(h.undone)-1]
	h.undone[len(h.undone)-1] = nil
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, top)
	return true
}

// reset drops everything and returns how many drawables were discarded.
func (h *history) reset() int {
	n := len(h.done) + len(h.undone)
	h.done = nil
	h.undone = nil
	return n
}
