package shape

import (
	"github.com/matzehuels/sketchpad/pkg/geom"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// Stroke is a freehand polyline. Points are append-only.
type Stroke struct {
	id        string
	points    []geom.Point
	thickness float64
}

// NewStroke starts a stroke at (x, y).
func NewStroke(x, y, thickness float64) *Stroke {
	return &Stroke{
		id:        newID(),
		points:    []geom.Point{geom.Pt(x, y)},
		thickness: thickness,
	}
}

func (s *Stroke) ID() string { return s.id }
func (s *Stroke) Kind() Kind { return KindStroke }

// Thickness returns the line width fixed at creation.
func (s *Stroke) Thickness() float64 { return s.thickness }

// Points returns a copy of the stroke's vertices in drawing order.
func (s *Stroke) Points() []geom.Point {
	out := make([]geom.Point, len(s.points))
	copy(out, s.points)
	return out
}

// Len returns the number of vertices.
func (s *Stroke) Len() int { return len(s.points) }

// Extend appends (x, y). Coincident points are kept.
func (s *Stroke) Extend(x, y float64) {
	s.points = append(s.points, geom.Pt(x, y))
}

// Render strokes the polyline. A single point yields a zero-length path.
func (s *Stroke) Render(dst surface.Surface) {
	dst.Push()
	defer dst.Pop()

	dst.SetLineWidth(s.thickness)
	first := s.points[0]
	dst.MoveTo(first.X, first.Y)
	for _, p := range s.points[1:] {
		dst.LineTo(p.X, p.Y)
	}
	dst.Stroke()
}
