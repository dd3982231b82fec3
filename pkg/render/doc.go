// Package render paints a display list onto a surface.
//
// # Overview
//
// Rendering is stateless. Every call resets the surface transform, clears it,
// and paints each drawable back to front, so later drawables cover earlier
// ones. The editor never calls into this package; hosts subscribe to its
// invalidation signals and call [Frame] with whatever they want repainted.
//
//	e.Subscribe(func(inv editor.Invalidation) {
//	    render.Frame(screen, e.DisplayList(), e.ActiveTool(), inv)
//	})
//
// # Export
//
// [Scaled] renders the same display list with a uniform scale applied first,
// which is how exports at a different resolution keep stroke widths and
// glyph sizes in proportion. The [sink] subpackage wraps it into PNG and SVG
// encoders:
//
//	png, err := sink.RenderPNG(e.DisplayList(),
//	    sink.WithSourceSize(256, 256),
//	    sink.WithTargetSize(1024, 1024),
//	)
//
// [sink]: github.com/matzehuels/sketchpad/pkg/render/sink
package render
