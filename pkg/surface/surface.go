// Package surface defines the drawing target that shapes and tools render onto.
//
// A [Surface] is a small, stateful 2D context in the style of an HTML canvas
// or fogleman/gg: a current transform, line width, and alpha, a pending path
// built with MoveTo/LineTo/DrawCircle and committed with Stroke, and filled
// text. Push and Pop save and restore all of that state.
//
// Two implementations are provided:
//
//   - [Raster] draws into an RGBA image with fogleman/gg and encodes PNG.
//   - [Recorder] records every stroke and glyph in device coordinates. Tests
//     use it to check geometry, and the SVG sink serialises its output.
//
// Line widths and glyph sizes are in user space and scale with the current
// transform, so the same shape rendered under Scale(4, 4) comes out four
// times larger in every dimension.
package surface

// Surface is a 2D drawing context.
type Surface interface {
	// Size returns the surface dimensions in device pixels.
	Size() (width, height int)

	// ResetTransform sets the current transform to identity.
	ResetTransform()
	// Clear paints the whole surface with its background, ignoring the transform.
	Clear()

	// Push saves the transform, line width, and alpha. Pop restores them.
	// Pop without a matching Push is ignored.
	Push()
	Pop()

	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	SetLineWidth(w float64)
	LineWidth() float64
	SetAlpha(a float64)
	Alpha() float64

	// MoveTo starts a new subpath. LineTo extends it; with no current point
	// it behaves like MoveTo.
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// DrawCircle adds a closed circular subpath.
	DrawCircle(x, y, r float64)
	// Stroke outlines the pending path with the current line width and alpha,
	// then clears it.
	Stroke()

	// FillText draws text with its baseline origin at (x, y).
	FillText(text string, x, y float64)
}
