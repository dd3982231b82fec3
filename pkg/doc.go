// Package pkg provides the core libraries for Sketchpad.
//
// # Overview
//
// Sketchpad draws freehand strokes and rotatable emoji stickers onto a small
// canvas, with unlimited undo and redo. The libraries split into the editing
// core, which knows nothing about screens or files, and the export side,
// which turns a display list into bytes.
//
// # Architecture
//
// The typical data flow:
//
//	Pointer events (terminal, HTTP, replay script)
//	         ↓
//	    [editor] (tool instantiates or extends a drawable, invalidation signal)
//	         ↓
//	    [render] (paint the display list and tool preview onto a surface)
//	         ↓
//	    [pipeline] + [cache] (PNG, SVG, or JSON export, cached by fingerprint)
//
// # Quick Start
//
//	reg := tool.NewRegistry(tool.NewRand(1))
//	reg.Add(tool.NewMarker("Thick", 6))
//	reg.Add(tool.NewSticker("🐸", reg.Rand()))
//
//	e, _ := editor.New(reg)
//	e.PointerDown(10, 10)
//	e.PointerMove(120, 40)
//	e.PointerUp(120, 40)
//
//	png, _ := sink.RenderPNG(e.DisplayList(),
//	    sink.WithSourceSize(256, 256),
//	    sink.WithTargetSize(1024, 1024))
//
// # Main Packages
//
// ## Editing Core
//
// [geom] - Points and 2D affine matrices.
//
// [surface] - The drawing target. [surface.Raster] paints pixels with gg;
// [surface.Recorder] records device-space operations for tests and SVG.
//
// [shape] - Drawables: strokes and stickers.
//
// [tool] - Markers and sticker tools, and the ordered tool registry.
//
// [editor] - The state machine that turns pointer input into drawables,
// with undo, redo, clear, and invalidation signals.
//
// ## Output
//
// [render] - Full frames, preview frames, and scaled export frames.
//
// [render/sink] - PNG, SVG, and JSON encoders.
//
// [fonts] - Glyph faces for sticker text.
//
// [pipeline] - Validated, cached multi-format export used by every host.
//
// [cache] - File, memory, and null artifact caches with scoped keys.
//
// ## Hosts and Infrastructure
//
// [config] - TOML configuration and the default tool palette.
//
// [script] - Recorded input scripts replayed against an editor.
//
// [session] - Per-client editors for the HTTP server, with expiry.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for editor, export, and cache events.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/editor/...     # Specific package
//	go test -run Example         # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/geom
// [surface]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/surface
// [surface.Raster]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/surface#Raster
// [surface.Recorder]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/surface#Recorder
// [shape]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/shape
// [tool]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/tool
// [editor]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/editor
// [render]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/render/sink
// [fonts]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/config
// [script]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/script
// [session]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sketchpad/pkg/observability
package pkg
