package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchpad/pkg/observability"
)

// logHooks reports editor, export, and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnCommit(kind string, displayLen int) {
	h.logger.Debug("shape committed", "kind", kind, "shapes", displayLen)
}

func (h *logHooks) OnUndo(displayLen, redoLen int) {
	h.logger.Debug("undo", "shapes", displayLen, "redo", redoLen)
}

func (h *logHooks) OnRedo(displayLen, redoLen int) {
	h.logger.Debug("redo", "shapes", displayLen, "redo", redoLen)
}

func (h *logHooks) OnClear(dropped int) {
	h.logger.Debug("cleared", "dropped", dropped)
}

func (h *logHooks) OnToolSelected(name string) {
	h.logger.Debug("tool selected", "tool", name)
}

func (h *logHooks) OnExportStart(format string, width, height int) {
	h.logger.Debug("export started", "format", format, "width", width, "height", height)
}

func (h *logHooks) OnExportComplete(format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("export finished", "format", format, "bytes", size, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

var (
	_ observability.EditorHooks = (*logHooks)(nil)
	_ observability.ExportHooks = (*logHooks)(nil)
	_ observability.CacheHooks  = (*logHooks)(nil)
)
