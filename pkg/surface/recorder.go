package surface

import (
	"github.com/matzehuels/sketchpad/pkg/fonts"
	"github.com/matzehuels/sketchpad/pkg/geom"
)

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpClear    OpKind = iota // surface cleared
	OpPolyline               // stroked open subpath
	OpCircle                 // stroked circle
	OpText                   // filled text
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpPolyline:
		return "polyline"
	case OpCircle:
		return "circle"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded operation. All geometry is in device coordinates, that
// is with the transform current at the time of the call already applied.
type Op struct {
	Kind OpKind

	Points []geom.Point // OpPolyline: vertices in order

	Center geom.Point // OpCircle
	Radius float64    // OpCircle

	Text     string     // OpText
	Origin   geom.Point // OpText: baseline origin
	Size     float64    // OpText: glyph size
	Rotation float64    // OpText: baseline angle in radians

	LineWidth float64 // OpPolyline, OpCircle
	Alpha     float64 // all but OpClear
}

type recorderState struct {
	matrix    geom.Matrix
	lineWidth float64
	alpha     float64
}

// Recorder is a Surface that records operations instead of rasterising them.
type Recorder struct {
	width, height int
	glyphSize     float64
	recorderState
	stack   []recorderState
	pending []Op
	ops     []Op
}

// NewRecorder creates a recorder reporting the given size. Text is recorded
// at [fonts.GlyphSize] before transformation.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:         width,
		height:        height,
		glyphSize:     fonts.GlyphSize,
		recorderState: recorderState{matrix: geom.Identity(), lineWidth: 1, alpha: 1},
	}
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Len returns the number of recorded operations.
func (r *Recorder) Len() int { return len(r.ops) }

// Reset drops recorded operations and any pending path. Transform state is kept.
func (r *Recorder) Reset() {
	r.ops = nil
	r.pending = nil
}

// Matrix returns the current transform.
func (r *Recorder) Matrix() geom.Matrix { return r.matrix }

// Depth returns how many states are saved by Push.
func (r *Recorder) Depth() int { return len(r.stack) }

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) ResetTransform() { r.matrix = geom.Identity() }

func (r *Recorder) Clear() {
	r.ops = append(r.ops, Op{Kind: OpClear})
}

func (r *Recorder) Push() {
	r.stack = append(r.stack, r.recorderState)
}

func (r *Recorder) Pop() {
	if len(r.stack) == 0 {
		return
	}
	r.recorderState = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) { r.matrix = r.matrix.Translate(x, y) }
func (r *Recorder) Rotate(angle float64)   { r.matrix = r.matrix.Rotate(angle) }
func (r *Recorder) Scale(sx, sy float64)   { r.matrix = r.matrix.Scale(sx, sy) }

func (r *Recorder) SetLineWidth(w float64) { r.lineWidth = w }
func (r *Recorder) LineWidth() float64     { return r.lineWidth }
func (r *Recorder) SetAlpha(a float64)     { r.alpha = a }
func (r *Recorder) Alpha() float64         { return r.alpha }

func (r *Recorder) MoveTo(x, y float64) {
	r.pending = append(r.pending, Op{
		Kind:   OpPolyline,
		Points: []geom.Point{r.matrix.Apply(geom.Pt(x, y))},
	})
}

func (r *Recorder) LineTo(x, y float64) {
	n := len(r.pending)
	if n == 0 || r.pending[n-1].Kind != OpPolyline {
		r.MoveTo(x, y)
		return
	}
	r.pending[n-1].Points = append(r.pending[n-1].Points, r.matrix.Apply(geom.Pt(x, y)))
}

func (r *Recorder) DrawCircle(x, y, radius float64) {
	r.pending = append(r.pending, Op{
		Kind:   OpCircle,
		Center: r.matrix.Apply(geom.Pt(x, y)),
		Radius: radius * r.matrix.ScaleFactor(),
	})
}

func (r *Recorder) Stroke() {
	width := r.lineWidth * r.matrix.ScaleFactor()
	for _, op := range r.pending {
		op.LineWidth = width
		op.Alpha = r.alpha
		r.ops = append(r.ops, op)
	}
	r.pending = nil
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.ops = append(r.ops, Op{
		Kind:     OpText,
		Text:     text,
		Origin:   r.matrix.Apply(geom.Pt(x, y)),
		Size:     r.glyphSize * r.matrix.ScaleFactor(),
		Rotation: r.matrix.Angle(),
		Alpha:    r.alpha,
	})
}

var _ Surface = (*Recorder)(nil)
