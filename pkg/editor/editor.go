// Package editor implements the sketchpad editing model.
//
// An [Editor] owns the display list, the redo stack, the active tool, and the
// drawable currently being drawn. Hosts feed it pointer events in
// surface-local pixel coordinates and commands (select tool, undo, redo,
// clear), and repaint when it signals an [Invalidation].
//
// # State machine
//
// The editor is either [Idle] or [Drawing]:
//
//	Idle    + PointerDown      → tool instantiates a drawable, redo cleared → Drawing, full
//	Drawing + PointerMove      → drawable extended                         → Drawing, full
//	Idle    + PointerMove      → tool anchor moved                         → Idle, preview
//	Drawing + PointerUp/Leave  → drawable finished, anchor moved           → Idle, preview
//
// Undo and redo move a drawable between the display list and the redo stack
// without copying it. Clear drops both.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Every call runs to completion and
// notifies subscribers synchronously before returning.
package editor

import (
	"strings"

	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/observability"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

const noDrawable = -1

type subscriber struct {
	id int
	fn func(Invalidation)
}

// Editor is the sketchpad editing model.
type Editor struct {
	tools  *tool.Registry
	active tool.Tool
	hist   history

	// inProgress indexes hist.done, or is noDrawable.
	inProgress int

	subs   []subscriber
	nextID int

	hooks observability.EditorHooks
}

// Option configures an Editor.
type Option func(*Editor)

// WithHooks reports this editor's events to h instead of the hooks
// registered with [observability.SetEditorHooks].
func WithHooks(h observability.EditorHooks) Option {
	return func(e *Editor) { e.hooks = h }
}

// New creates an editor over the tools in reg. The first registered tool
// becomes active.
func New(reg *tool.Registry, opts ...Option) (*Editor, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "editor needs at least one tool")
	}
	e := &Editor{tools: reg, inProgress: noDrawable}
	for _, opt := range opts {
		opt(e)
	}
	e.active = reg.All()[0]
	e.active.OnSelected()
	return e, nil
}

// Subscribe registers fn to be called with every invalidation, in
// registration order. The returned function removes it.
func (e *Editor) Subscribe(fn func(Invalidation)) (unsubscribe func()) {
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Editor) signal(inv Invalidation) {
	for _, s := range e.subs {
		s.fn(inv)
	}
}

// PointerDown starts a new drawable at (x, y) with the active tool. If a
// drawable was still in progress, it is finished first.
func (e *Editor) PointerDown(x, y float64) {
	e.active.MoveAnchor(x, y)
	d := e.active.Instantiate()
	e.hist.push(d)
	e.inProgress = len(e.hist.done) - 1

	e.observer().OnCommit(string(d.Kind()), len(e.hist.done))
	e.signal(InvalidateFull)
}

// PointerMove extends the drawable in progress, or moves the tool preview.
func (e *Editor) PointerMove(x, y float64) {
	if e.inProgress != noDrawable {
		e.hist.done[e.inProgress].Extend(x, y)
		e.signal(InvalidateFull)
		return
	}
	e.active.MoveAnchor(x, y)
	e.signal(InvalidatePreview)
}

// PointerUp finishes the drawable in progress and returns to preview mode.
func (e *Editor) PointerUp(x, y float64) {
	e.release(x, y)
}

// PointerLeave behaves like PointerUp.
func (e *Editor) PointerLeave(x, y float64) {
	e.release(x, y)
}

func (e *Editor) release(x, y float64) {
	e.inProgress = noDrawable
	e.active.MoveAnchor(x, y)
	e.signal(InvalidatePreview)
}

// SelectTool makes t active and calls its OnSelected. A drawable in progress
// keeps being extended. A nil tool is ignored.
func (e *Editor) SelectTool(t tool.Tool) {
	if t == nil {
		return
	}
	e.active = t
	t.OnSelected()

	e.observer().OnToolSelected(t.Name())
	e.signal(InvalidatePreview)
}

// SelectToolByName selects a registered tool.
func (e *Editor) SelectToolByName(name string) error {
	t, ok := e.tools.Get(name)
	if !ok {
		return errors.New(errors.ErrCodeToolNotFound, "no tool named %q (have %s)", name, strings.Join(e.tools.Names(), ", "))
	}
	e.SelectTool(t)
	return nil
}

// AddCustomTool registers a sticker tool for symbol. A blank symbol is a
// no-op and reports false. The new tool is not selected.
func (e *Editor) AddCustomTool(symbol string) (tool.Tool, bool) {
	return e.tools.AddCustom(symbol)
}

// Clear drops the display list and the redo stack.
func (e *Editor) Clear() {
	dropped := e.hist.reset()
	e.inProgress = noDrawable

	e.observer().OnClear(dropped)
	e.signal(InvalidateFull)
}

// Undo moves the last drawable onto the redo stack. It reports false and
// signals nothing when the display list is empty.
func (e *Editor) Undo() bool {
	if !e.hist.undo() {
		return false
	}
	e.inProgress = noDrawable

	e.observer().OnUndo(len(e.hist.done), len(e.hist.undone))
	e.signal(InvalidateFull)
	return true
}

// Redo moves the most recently undone drawable back onto the display list.
// It reports false and signals nothing when the redo stack is empty.
func (e *Editor) Redo() bool {
	if !e.hist.redo() {
		return false
	}
	e.inProgress = noDrawable

	e.observer().OnRedo(len(e.hist.done), len(e.hist.undone))
	e.signal(InvalidateFull)
	return true
}

// DisplayList returns the committed drawables, back to front. The slice is a
// copy; the drawables are shared.
func (e *Editor) DisplayList() []shape.Drawable {
	out := make([]shape.Drawable, len(e.hist.done))
	copy(out, e.hist.done)
	return out
}

// RedoStack returns the undone drawables, most recently undone last.
func (e *Editor) RedoStack() []shape.Drawable {
	out := make([]shape.Drawable, len(e.hist.undone))
	copy(out, e.hist.undone)
	return out
}

func (e *Editor) CanUndo() bool { return len(e.hist.done) > 0 }
func (e *Editor) CanRedo() bool { return len(e.hist.undone) > 0 }

func (e *Editor) ActiveTool() tool.Tool { return e.active }

func (e *Editor) Tools() *tool.Registry { return e.tools }

func (e *Editor) State() State {
	if e.inProgress == noDrawable {
		return Idle
	}
	return Drawing
}

// Drawing reports whether a drawable is in progress.
func (e *Editor) Drawing() bool { return e.State() == Drawing }

// InProgress returns the drawable being drawn, if any.
func (e *Editor) InProgress() (shape.Drawable, bool) {
	if e.inProgress == noDrawable {
		return nil, false
	}
	return e.hist.done[e.inProgress], true
}

func (e *Editor) observer() observability.EditorHooks {
	if e.hooks != nil {
		return e.hooks
	}
	return observability.Editor()
}
