// Package shape defines the drawables that make up a sketch.
//
// A [Drawable] is a committed shape in the editor's display list. It knows how
// to paint itself onto a [surface.Surface] and how to respond to continued
// pointer movement while it is still being drawn. Two variants exist:
//
//   - [Stroke]: a freehand polyline with a fixed thickness.
//   - [Sticker]: a glyph stamped at a position and rotated by dragging.
//
// Drawables paint in canvas coordinates and leave the surface state exactly as
// they found it, so the same display list renders unchanged onto a scaled
// export surface.
package shape

import (
	"github.com/google/uuid"

	"github.com/matzehuels/sketchpad/pkg/surface"
)

// Kind names a drawable variant.
type Kind string

const (
	KindStroke  Kind = "stroke"
	KindSticker Kind = "sticker"
)

// Drawable is a shape that can be rendered and extended.
type Drawable interface {
	// ID is a unique identifier assigned at creation.
	ID() string
	Kind() Kind
	// Render paints the shape. Surface state is restored before returning.
	Render(s surface.Surface)
	// Extend mutates the shape in response to the pointer moving to (x, y).
	Extend(x, y float64)
}

func newID() string {
	return uuid.NewString()
}
