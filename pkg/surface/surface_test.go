package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/fonts"
	"github.com/matzehuels/sketchpad/pkg/geom"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func nearPt(a, b geom.Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestNewRasterInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 10},
		{"too large", errors.MaxDimension + 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaster(tt.w, tt.h)
			if !errors.Is(err, errors.ErrCodeInvalidSize) {
				t.Errorf("NewRaster(%d, %d) code = %v, want %v", tt.w, tt.h, errors.GetCode(err), errors.ErrCodeInvalidSize)
			}
		})
	}
}

func TestRasterClearAndStroke(t *testing.T) {
	r, err := NewRaster(32, 32)
	if err != nil {
		t.Fatalf("NewRaster() error: %v", err)
	}
	r.Clear()

	if got := color.NRGBAModel.Convert(r.Image().At(2, 2)).(color.NRGBA); got.R != 255 || got.A != 255 {
		t.Errorf("background pixel = %+v, want opaque white", got)
	}

	r.SetLineWidth(4)
	r.MoveTo(0, 16)
	r.LineTo(32, 16)
	r.Stroke()

	if got := color.NRGBAModel.Convert(r.Image().At(16, 16)).(color.NRGBA); got.R > 10 {
		t.Errorf("stroked pixel = %+v, want dark", got)
	}
	if got := color.NRGBAModel.Convert(r.Image().At(16, 2)).(color.NRGBA); got.R != 255 {
		t.Errorf("unstroked pixel = %+v, want white", got)
	}
}

func TestRasterScaledLineWidth(t *testing.T) {
	r, err := NewRaster(64, 64)
	if err != nil {
		t.Fatalf("NewRaster() error: %v", err)
	}
	r.Clear()
	r.Scale(4, 4)
	r.SetLineWidth(4)
	r.MoveTo(0, 8)
	r.LineTo(16, 8)
	r.Stroke()

	// Width 4 at 4x covers device rows 24..40.
	for _, y := range []int{26, 32, 38} {
		if got := color.NRGBAModel.Convert(r.Image().At(32, y)).(color.NRGBA); got.R > 10 {
			t.Errorf("pixel (32, %d) = %+v, want dark", y, got)
		}
	}
	if got := color.NRGBAModel.Convert(r.Image().At(32, 20)).(color.NRGBA); got.R != 255 {
		t.Errorf("pixel (32, 20) = %+v, want white", got)
	}
}

func TestRasterAlpha(t *testing.T) {
	r, err := NewRaster(16, 16, WithBackground(color.Transparent))
	if err != nil {
		t.Fatalf("NewRaster() error: %v", err)
	}
	r.Clear()
	r.SetAlpha(0.5)
	r.SetLineWidth(8)
	r.MoveTo(0, 8)
	r.LineTo(16, 8)
	r.Stroke()

	got := color.NRGBAModel.Convert(r.Image().At(8, 8)).(color.NRGBA)
	if got.A < 120 || got.A > 135 {
		t.Errorf("alpha = %d, want ~128", got.A)
	}
}

func TestRasterPushPop(t *testing.T) {
	r, err := NewRaster(16, 16)
	if err != nil {
		t.Fatalf("NewRaster() error: %v", err)
	}
	r.SetLineWidth(3)
	r.SetAlpha(0.25)
	r.Push()
	r.SetLineWidth(9)
	r.SetAlpha(1)
	r.Pop()

	if r.LineWidth() != 3 {
		t.Errorf("LineWidth() = %v, want 3", r.LineWidth())
	}
	if r.Alpha() != 0.25 {
		t.Errorf("Alpha() = %v, want 0.25", r.Alpha())
	}

	// Unbalanced Pop is ignored.
	r.Pop()
	if r.LineWidth() != 3 {
		t.Errorf("LineWidth() after extra Pop = %v, want 3", r.LineWidth())
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r, err := NewRaster(20, 10)
	if err != nil {
		t.Fatalf("NewRaster() error: %v", err)
	}
	r.Clear()
	r.FillText("A", 2, 9)

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("bounds = %v, want 20x10", b)
	}
}

func TestRecorderPolyline(t *testing.T) {
	r := NewRecorder(100, 100)
	r.SetLineWidth(2)
	r.MoveTo(1, 2)
	r.LineTo(3, 4)
	r.LineTo(5, 6)
	r.Stroke()

	ops := r.Ops()
	if len(ops) != 1 {
		t.Fatalf("len(ops) = %d, want 1", len(ops))
	}
	op := ops[0]
	if op.Kind != OpPolyline {
		t.Errorf("Kind = %v, want polyline", op.Kind)
	}
	want := []geom.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}
	if len(op.Points) != len(want) {
		t.Fatalf("Points = %v, want %v", op.Points, want)
	}
	for i := range want {
		if !nearPt(op.Points[i], want[i]) {
			t.Errorf("Points[%d] = %v, want %v", i, op.Points[i], want[i])
		}
	}
	if op.LineWidth != 2 || op.Alpha != 1 {
		t.Errorf("LineWidth, Alpha = %v, %v, want 2, 1", op.LineWidth, op.Alpha)
	}
}

func TestRecorderLineToWithoutMove(t *testing.T) {
	r := NewRecorder(10, 10)
	r.LineTo(4, 4)
	r.Stroke()

	ops := r.Ops()
	if len(ops) != 1 || len(ops[0].Points) != 1 {
		t.Fatalf("ops = %+v, want one single-point polyline", ops)
	}
}

func TestRecorderTransformScalesEverything(t *testing.T) {
	r := NewRecorder(1024, 1024)
	r.Scale(4, 4)
	r.SetLineWidth(2)
	r.DrawCircle(10, 10, 3)
	r.Stroke()
	r.FillText("x", 5, 5)

	ops := r.Ops()
	if len(ops) != 2 {
		t.Fatalf("len(ops) = %d, want 2", len(ops))
	}
	c := ops[0]
	if !nearPt(c.Center, geom.Pt(40, 40)) || !near(c.Radius, 12) || !near(c.LineWidth, 8) {
		t.Errorf("circle = %+v, want center (40,40) radius 12 width 8", c)
	}
	txt := ops[1]
	if !nearPt(txt.Origin, geom.Pt(20, 20)) || !near(txt.Size, 4*fonts.GlyphSize) {
		t.Errorf("text = %+v, want origin (20,20) size %v", txt, 4*fonts.GlyphSize)
	}
}

func TestRecorderPushPopRestoresTransform(t *testing.T) {
	r := NewRecorder(10, 10)
	r.Translate(5, 5)
	r.SetAlpha(0.5)
	r.Push()
	r.Rotate(math.Pi / 2)
	r.SetAlpha(1)
	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
	r.Pop()

	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", r.Depth())
	}
	if got := r.Matrix().Apply(geom.Pt(1, 0)); !nearPt(got, geom.Pt(6, 5)) {
		t.Errorf("Apply(1,0) after Pop = %v, want (6,5)", got)
	}
	if r.Alpha() != 0.5 {
		t.Errorf("Alpha() = %v, want 0.5", r.Alpha())
	}
}

func TestRecorderRotatedText(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Translate(50, 50)
	r.Rotate(math.Pi / 2)
	r.FillText("🐸", -35, 16)

	op := r.Ops()[0]
	// Rotating (-35, 16) by 90° gives (-16, -35).
	if !nearPt(op.Origin, geom.Pt(34, 15)) {
		t.Errorf("Origin = %v, want (34, 15)", op.Origin)
	}
	if !near(op.Rotation, math.Pi/2) {
		t.Errorf("Rotation = %v, want π/2", op.Rotation)
	}
}

func TestRecorderResetAndClear(t *testing.T) {
	r := NewRecorder(10, 10)
	r.Clear()
	r.MoveTo(0, 0)
	if r.Len() != 1 || r.Ops()[0].Kind != OpClear {
		t.Fatalf("ops = %+v, want single clear", r.Ops())
	}
	r.Reset()
	r.Stroke()
	if r.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", r.Len())
	}
	if w, h := r.Size(); w != 10 || h != 10 {
		t.Errorf("Size() = %d, %d, want 10, 10", w, h)
	}
}
