package tool

import (
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// previewLineWidth is the outline width of the marker nib indicator.
const previewLineWidth = 1.0

// Marker draws freehand strokes of a fixed thickness.
type Marker struct {
	anchor
	name      string
	thickness float64
}

// NewMarker creates a marker tool.
func NewMarker(name string, thickness float64) *Marker {
	return &Marker{name: name, thickness: thickness}
}

func (m *Marker) Name() string { return m.name }
func (m *Marker) Kind() Kind   { return KindMarker }

// Thickness returns the width new strokes will get.
func (m *Marker) Thickness() float64 { return m.thickness }

// SetThickness changes the width of strokes created from now on.
func (m *Marker) SetThickness(t float64) { m.thickness = t }

func (m *Marker) OnSelected() {}

func (m *Marker) Instantiate() shape.Drawable {
	return shape.NewStroke(m.pos.X, m.pos.Y, m.thickness)
}

// RenderPreview outlines a circle the size of the nib.
func (m *Marker) RenderPreview(s surface.Surface) {
	s.Push()
	defer s.Pop()

	s.SetLineWidth(previewLineWidth)
	s.DrawCircle(m.pos.X, m.pos.Y, m.thickness/2)
	s.Stroke()
}
