package sink

import (
	"encoding/json"

	"github.com/matzehuels/sketchpad/pkg/geom"
	"github.com/matzehuels/sketchpad/pkg/shape"
)

type jsonOutput struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Shapes []jsonShape `json:"shapes"`
}

type jsonShape struct {
	ID   string     `json:"id"`
	Kind shape.Kind `json:"kind"`

	Points    []geom.Point `json:"points,omitempty"`
	Thickness float64      `json:"thickness,omitempty"`

	Position     *geom.Point `json:"position,omitempty"`
	Symbol       string      `json:"symbol,omitempty"`
	BaseRotation float64     `json:"base_rotation,omitempty"`
	Rotation     float64     `json:"rotation,omitempty"`
}

// RenderJSON describes list in canvas coordinates as a pretty-printed JSON
// document. Only the source size option applies.
func RenderJSON(list []shape.Drawable, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	out := jsonOutput{
		Width:  o.srcW,
		Height: o.srcH,
		Shapes: buildJSONShapes(list),
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONShapes(list []shape.Drawable) []jsonShape {
	shapes := make([]jsonShape, 0, len(list))
	for _, d := range list {
		js := jsonShape{ID: d.ID(), Kind: d.Kind()}
		switch d := d.(type) {
		case *shape.Stroke:
			js.Points = d.Points()
			js.Thickness = d.Thickness()
		case *shape.Sticker:
			pos := d.Position()
			js.Position = &pos
			js.Symbol = d.Symbol()
			js.BaseRotation = d.BaseRotation()
			js.Rotation = d.Rotation()
		}
		shapes = append(shapes, js)
	}
	return shapes
}
