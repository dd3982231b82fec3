// Package observability provides hooks for metrics, tracing, and logging.
//
// The editor core performs no logging of its own. Instead it reports what it
// did through the hooks registered here, and the host decides what to do with
// the events: the CLI logs them at debug level, tests count them, a server
// could export them as metrics.
//
// # Architecture
//
//   - Hook interfaces per event category (editor, export, cache)
//   - No-op default implementations
//   - Registration of custom implementations at startup
//
// Editor and export hooks take no context: the calls they observe are
// synchronous and never block. Cache hooks keep a context because cache
// access is I/O.
//
// # Usage
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Editor().OnCommit(d.Kind(), len(displayList))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from editor state transitions.
type EditorHooks interface {
	// OnCommit records a new drawable appended to the display list.
	OnCommit(kind string, displayLen int)

	// OnUndo and OnRedo record a drawable moving between history containers.
	OnUndo(displayLen, redoLen int)
	OnRedo(displayLen, redoLen int)

	// OnClear records a clear and how many drawables it dropped.
	OnClear(dropped int)

	// OnToolSelected records a tool becoming active.
	OnToolSelected(name string)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the export sinks.
type ExportHooks interface {
	OnExportStart(format string, width, height int)
	OnExportComplete(format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnCommit(string, int)  {}
func (NoopEditorHooks) OnUndo(int, int)       {}
func (NoopEditorHooks) OnRedo(int, int)       {}
func (NoopEditorHooks) OnClear(int)           {}
func (NoopEditorHooks) OnToolSelected(string) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(string, int, int)                     {}
func (NoopExportHooks) OnExportComplete(string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	exportHooks ExportHooks = NoopExportHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup before any editor is created.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	exportHooks = NoopExportHooks{}
	cacheHooks = NoopCacheHooks{}
}
