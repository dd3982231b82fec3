package sink

import (
	"bytes"
	"time"

	"github.com/matzehuels/sketchpad/pkg/observability"
	"github.com/matzehuels/sketchpad/pkg/render"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// RenderPNG paints list onto a new raster of the target size and returns the
// PNG encoding. Sizes are validated before any drawing happens.
func RenderPNG(list []shape.Drawable, opts ...Option) (data []byte, err error) {
	o := newOptions(opts...)

	start := time.Now()
	observability.Export().OnExportStart("png", o.dstW, o.dstH)
	defer func() {
		observability.Export().OnExportComplete("png", len(data), time.Since(start), err)
	}()

	if err := o.validate(); err != nil {
		return nil, err
	}
	r, err := newRaster(o)
	if err != nil {
		return nil, err
	}
	render.Scaled(r, list, o.scale())

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newRaster(o options) (*surface.Raster, error) {
	rasterOpts := []surface.RasterOption{
		surface.WithBackground(o.background),
		surface.WithInk(o.ink),
	}
	if o.face != nil {
		rasterOpts = append(rasterOpts, surface.WithFontFace(o.face))
	}
	return surface.NewRaster(o.dstW, o.dstH, rasterOpts...)
}
