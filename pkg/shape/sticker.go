package shape

import (
	"github.com/matzehuels/sketchpad/pkg/geom"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// Glyph placement relative to a sticker's position, tuned for a 50px glyph
// so the symbol sits roughly centered on the pointer.
const (
	GlyphOffsetX = -35.0
	GlyphOffsetY = 16.0
)

// DragDivisor converts horizontal drag distance in pixels to radians.
const DragDivisor = 20.0

// Sticker is a glyph stamped at a fixed position. Dragging rotates it.
type Sticker struct {
	id           string
	position     geom.Point
	symbol       string
	baseRotation float64
	rotation     float64
}

// NewSticker places symbol at (x, y) rotated by rotation radians.
func NewSticker(x, y, rotation float64, symbol string) *Sticker {
	return &Sticker{
		id:           newID(),
		position:     geom.Pt(x, y),
		symbol:       symbol,
		baseRotation: rotation,
		rotation:     rotation,
	}
}

func (s *Sticker) ID() string            { return s.id }
func (s *Sticker) Kind() Kind            { return KindSticker }
func (s *Sticker) Position() geom.Point  { return s.position }
func (s *Sticker) Symbol() string        { return s.symbol }
func (s *Sticker) BaseRotation() float64 { return s.baseRotation }
func (s *Sticker) Rotation() float64     { return s.rotation }

// Extend sets the rotation from the horizontal distance between x and the
// sticker's position. The result is not wrapped into [0, 2π).
func (s *Sticker) Extend(x, _ float64) {
	s.rotation = s.baseRotation + (x-s.position.X)/DragDivisor
}

func (s *Sticker) Render(dst surface.Surface) {
	DrawGlyph(dst, s.symbol, s.position, s.rotation)
}

// DrawGlyph fills symbol at pos rotated by rotation, using the sticker glyph
// offset. The surface transform is saved and restored around the draw.
func DrawGlyph(dst surface.Surface, symbol string, pos geom.Point, rotation float64) {
	dst.Push()
	defer dst.Pop()

	dst.Translate(pos.X, pos.Y)
	dst.Rotate(rotation)
	dst.FillText(symbol, GlyphOffsetX, GlyphOffsetY)
}
