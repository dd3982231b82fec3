package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/sketchpad/pkg/observability"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// RenderSVG paints list through a [surface.Recorder] and serialises the
// recorded strokes and glyphs as SVG, one group per drawable.
func RenderSVG(list []shape.Drawable, opts ...Option) (data []byte, err error) {
	o := newOptions(opts...)

	start := time.Now()
	observability.Export().OnExportStart("svg", o.dstW, o.dstH)
	defer func() {
		observability.Export().OnExportComplete("svg", len(data), time.Since(start), err)
	}()

	if err := o.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		o.dstW, o.dstH, o.dstW, o.dstH)
	if fill, ok := svgColor(o.background); ok {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", fill)
	}

	rec := surface.NewRecorder(o.dstW, o.dstH)
	scale := o.scale()
	rec.Scale(scale, scale)
	ink, _ := svgColor(o.ink)
	for _, d := range list {
		rec.Reset()
		d.Render(rec)
		fmt.Fprintf(&buf, `  <g id="shape-%s" class="%s">`+"\n", d.ID(), d.Kind())
		for _, op := range rec.Ops() {
			writeOp(&buf, op, ink)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func writeOp(buf *bytes.Buffer, op surface.Op, ink string) {
	if ink == "" {
		return
	}
	switch op.Kind {
	case surface.OpPolyline:
		pts := make([]string, len(op.Points))
		for i, p := range op.Points {
			pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round"%s/>`+"\n",
			strings.Join(pts, " "), ink, op.LineWidth, opacity("stroke-opacity", op.Alpha))
	case surface.OpCircle:
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
			op.Center.X, op.Center.Y, op.Radius, ink, op.LineWidth, opacity("stroke-opacity", op.Alpha))
	case surface.OpText:
		if op.Text == "" {
			return
		}
		deg := op.Rotation * 180 / math.Pi
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.2f" fill="%s" transform="rotate(%.3f %.2f %.2f)"%s>`,
			op.Origin.X, op.Origin.Y, op.Size, ink, deg, op.Origin.X, op.Origin.Y, opacity("fill-opacity", op.Alpha))
		_ = xml.EscapeText(buf, []byte(op.Text))
		buf.WriteString("</text>\n")
	}
}

func opacity(attr string, alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.2f"`, attr, max(alpha, 0))
}

// svgColor formats c as a hex color. Fully transparent colors report false.
func svgColor(c color.Color) (string, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), true
}
