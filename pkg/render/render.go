package render

import (
	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/surface"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

// Default sizes of the on-screen canvas and of exported images.
const (
	DefaultCanvasSize = 256
	DefaultExportSize = 1024
)

// Full clears s and paints list in order.
func Full(s surface.Surface, list []shape.Drawable) {
	s.ResetTransform()
	s.Clear()
	paint(s, list)
}

// WithPreview paints list and then the preview of t. A nil tool paints no
// preview.
func WithPreview(s surface.Surface, list []shape.Drawable, t tool.Tool) {
	Full(s, list)
	if t != nil {
		t.RenderPreview(s)
	}
}

// Frame repaints s for an editor invalidation.
func Frame(s surface.Surface, list []shape.Drawable, t tool.Tool, inv editor.Invalidation) {
	if inv == editor.InvalidatePreview {
		WithPreview(s, list, t)
		return
	}
	Full(s, list)
}

// Scaled clears s and paints list under a uniform scale.
func Scaled(s surface.Surface, list []shape.Drawable, scale float64) {
	s.ResetTransform()
	s.Clear()
	s.Scale(scale, scale)
	paint(s, list)
}

// ExportScale returns the uniform factor that fits a source canvas into a
// target size without distortion.
func ExportScale(srcW, srcH, dstW, dstH int) float64 {
	return min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
}

func paint(s surface.Surface, list []shape.Drawable) {
	for _, d := range list {
		d.Render(s)
	}
}
