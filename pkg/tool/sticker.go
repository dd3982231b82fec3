package tool

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// PreviewAlpha is the opacity of the sticker preview glyph.
const PreviewAlpha = 0.5

// StickerTool stamps a glyph at a random orientation.
type StickerTool struct {
	anchor
	symbol   string
	rotation float64
	rng      *rand.Rand
}

// NewSticker creates a sticker tool for symbol. Rotations are drawn from rng.
// The initial rotation is zero until the tool is first selected.
func NewSticker(symbol string, rng *rand.Rand) *StickerTool {
	return &StickerTool{symbol: symbol, rng: rng}
}

func (t *StickerTool) Name() string      { return t.symbol }
func (t *StickerTool) Kind() Kind        { return KindSticker }
func (t *StickerTool) Symbol() string    { return t.symbol }
func (t *StickerTool) Rotation() float64 { return t.rotation }

// OnSelected picks a fresh rotation uniformly in [0, 2π).
func (t *StickerTool) OnSelected() {
	t.rotation = t.rng.Float64() * 2 * math.Pi
}

func (t *StickerTool) Instantiate() shape.Drawable {
	return shape.NewSticker(t.pos.X, t.pos.Y, t.rotation, t.symbol)
}

// RenderPreview draws the glyph translucent. The previous alpha is restored
// even if drawing panics.
func (t *StickerTool) RenderPreview(s surface.Surface) {
	prev := s.Alpha()
	defer s.SetAlpha(prev)

	s.SetAlpha(PreviewAlpha)
	shape.DrawGlyph(s, t.symbol, t.pos, t.rotation)
}
