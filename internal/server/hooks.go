package server

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchpad/pkg/observability"
)

// sessionHooks logs one session's editor events at debug level. The logger
// is set once the session has an ID.
type sessionHooks struct {
	logger *log.Logger
}

func (h *sessionHooks) OnCommit(kind string, displayLen int) {
	h.logger.Debug("shape committed", "kind", kind, "shapes", displayLen)
}

func (h *sessionHooks) OnUndo(displayLen, redoLen int) {
	h.logger.Debug("undo", "shapes", displayLen, "redo", redoLen)
}

func (h *sessionHooks) OnRedo(displayLen, redoLen int) {
	h.logger.Debug("redo", "shapes", displayLen, "redo", redoLen)
}

func (h *sessionHooks) OnClear(dropped int) {
	h.logger.Debug("cleared", "dropped", dropped)
}

func (h *sessionHooks) OnToolSelected(name string) {
	h.logger.Debug("tool selected", "tool", name)
}

var _ observability.EditorHooks = (*sessionHooks)(nil)
