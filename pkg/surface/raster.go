package surface

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/fonts"
)

// RasterOption configures a Raster.
type RasterOption func(*Raster)

// WithBackground sets the color Clear paints. Default is opaque white.
func WithBackground(c color.Color) RasterOption {
	return func(r *Raster) { r.background = c }
}

// WithFontFace sets the face FillText draws with. Default is [fonts.Default] at
// [fonts.GlyphSize].
func WithFontFace(f font.Face) RasterOption {
	return func(r *Raster) { r.face = f }
}

// WithInk sets the color strokes and text are drawn in. Default is black.
func WithInk(c color.Color) RasterOption {
	return func(r *Raster) { r.ink = color.NRGBAModel.Convert(c).(color.NRGBA) }
}

type rasterState struct {
	lineWidth float64
	alpha     float64
}

// Raster is a Surface backed by a fogleman/gg context.
type Raster struct {
	dc         *gg.Context
	background color.Color
	ink        color.NRGBA
	face       font.Face
	rasterState
	stack []rasterState
}

// NewRaster creates a raster surface of the given size.
func NewRaster(width, height int, opts ...RasterOption) (*Raster, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	r := &Raster{
		background:  color.White,
		ink:         color.NRGBA{A: 255},
		rasterState: rasterState{lineWidth: 1, alpha: 1},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.face == nil {
		face, err := fonts.Default(fonts.GlyphSize)
		if err != nil {
			return nil, err
		}
		r.face = face
	}

	r.dc = gg.NewContext(width, height)
	r.dc.SetFontFace(r.face)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.applyColor()
	return r, nil
}

func (r *Raster) Size() (int, int) { return r.dc.Width(), r.dc.Height() }

func (r *Raster) ResetTransform() { r.dc.Identity() }

func (r *Raster) Clear() {
	r.dc.Push()
	r.dc.SetColor(r.background)
	r.dc.Clear()
	r.dc.Pop()
}

func (r *Raster) Push() {
	r.dc.Push()
	r.stack = append(r.stack, r.rasterState)
}

func (r *Raster) Pop() {
	if len(r.stack) == 0 {
		return
	}
	r.dc.Pop()
	r.rasterState = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.applyColor()
}

func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(angle float64)   { r.dc.Rotate(angle) }
func (r *Raster) Scale(sx, sy float64)   { r.dc.Scale(sx, sy) }

func (r *Raster) SetLineWidth(w float64) { r.lineWidth = w }
func (r *Raster) LineWidth() float64     { return r.lineWidth }

func (r *Raster) SetAlpha(a float64) {
	r.alpha = a
	r.applyColor()
}

func (r *Raster) Alpha() float64 { return r.alpha }

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) DrawCircle(x, y, radius float64) { r.dc.DrawCircle(x, y, radius) }

// Stroke scales the line width by the current transform: gg strokes in
// device pixels.
func (r *Raster) Stroke() {
	r.dc.SetLineWidth(r.lineWidth * r.scaleFactor())
	r.dc.Stroke()
}

func (r *Raster) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	r.dc.DrawString(text, x, y)
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "encode png")
	}
	return nil
}

func (r *Raster) applyColor() {
	c := r.ink
	r.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(math.Round(float64(c.A)*clamp01(r.alpha))))
}

func (r *Raster) scaleFactor() float64 {
	x0, y0 := r.dc.TransformPoint(0, 0)
	x1, y1 := r.dc.TransformPoint(1, 0)
	return math.Hypot(x1-x0, y1-y0)
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}

var _ Surface = (*Raster)(nil)
