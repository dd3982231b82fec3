// Package tool implements the strategies that turn pointer input into shapes.
//
// A [Tool] tracks an anchor point that follows the pointer while nothing is
// being drawn, paints a live preview there, and on pointer-down creates a new
// [shape.Drawable] at the anchor. [Marker] produces strokes; [StickerTool]
// stamps a glyph whose orientation is re-randomized every time the tool is
// selected.
//
// Tools are collected in a [Registry], which also creates custom sticker
// tools on demand.
package tool

import (
	"math/rand/v2"

	"github.com/matzehuels/sketchpad/pkg/geom"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// Kind names a tool variant.
type Kind string

const (
	KindMarker  Kind = "marker"
	KindSticker Kind = "sticker"
)

// Tool is an input-to-shape factory with preview state.
type Tool interface {
	// Name identifies the tool in a registry.
	Name() string
	Kind() Kind
	Anchor() geom.Point
	MoveAnchor(x, y float64)
	// RenderPreview paints the tool's indicator at its anchor. Surface state
	// is restored before returning.
	RenderPreview(s surface.Surface)
	// OnSelected is called each time the tool becomes active.
	OnSelected()
	// Instantiate creates a new drawable anchored at the current position.
	Instantiate() shape.Drawable
}

// NewRand returns a PCG-backed source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

type anchor struct {
	pos geom.Point
}

func (a *anchor) Anchor() geom.Point      { return a.pos }
func (a *anchor) MoveAnchor(x, y float64) { a.pos = geom.Pt(x, y) }
