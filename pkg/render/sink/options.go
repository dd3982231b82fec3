package sink

import (
	"image/color"

	"golang.org/x/image/font"

	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/render"
)

// Option configures a sink.
type Option func(*options)

type options struct {
	srcW, srcH int
	dstW, dstH int
	background color.Color
	ink        color.Color
	face       font.Face
}

func newOptions(opts ...Option) options {
	o := options{
		srcW:       render.DefaultCanvasSize,
		srcH:       render.DefaultCanvasSize,
		dstW:       render.DefaultExportSize,
		dstH:       render.DefaultExportSize,
		background: color.White,
		ink:        color.Black,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSourceSize sets the size of the canvas the shapes were drawn on.
// Default is 256x256.
func WithSourceSize(w, h int) Option {
	return func(o *options) { o.srcW, o.srcH = w, h }
}

// WithTargetSize sets the output size. Default is 1024x1024.
func WithTargetSize(w, h int) Option {
	return func(o *options) { o.dstW, o.dstH = w, h }
}

func WithBackground(c color.Color) Option { return func(o *options) { o.background = c } }

// WithInk sets the drawing color. Default is black.
func WithInk(c color.Color) Option { return func(o *options) { o.ink = c } }

// WithFontFace sets the face stickers are drawn with (PNG only).
func WithFontFace(f font.Face) Option { return func(o *options) { o.face = f } }

func (o options) scale() float64 {
	return render.ExportScale(o.srcW, o.srcH, o.dstW, o.dstH)
}

func (o options) validate() error {
	if err := errors.ValidateSize(o.srcW, o.srcH); err != nil {
		return err
	}
	return errors.ValidateSize(o.dstW, o.dstH)
}
