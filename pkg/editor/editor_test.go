package editor

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/geom"
	"github.com/matzehuels/sketchpad/pkg/observability"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

func newTestEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	reg := tool.NewRegistry(tool.NewRand(1))
	reg.Add(tool.NewMarker("Thin", 2))
	reg.Add(tool.NewMarker("Thick", 6))
	reg.Add(tool.NewSticker("🐸", reg.Rand()))
	e, err := New(reg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return e
}

// record collects invalidations emitted by e.
func record(e *Editor) *[]Invalidation {
	var got []Invalidation
	e.Subscribe(func(inv Invalidation) { got = append(got, inv) })
	return &got
}

func draw(e *Editor, pts ...geom.Point) {
	e.PointerDown(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		e.PointerMove(p.X, p.Y)
	}
	last := pts[len(pts)-1]
	e.PointerUp(last.X, last.Y)
}

func TestNewRequiresTools(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(nil) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if _, err := New(tool.NewRegistry(tool.NewRand(1))); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(empty) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestNewSelectsFirstTool(t *testing.T) {
	e := newTestEditor(t)
	if e.ActiveTool().Name() != "Thin" {
		t.Errorf("ActiveTool() = %q, want Thin", e.ActiveTool().Name())
	}
	if e.State() != Idle {
		t.Errorf("State() = %v, want idle", e.State())
	}
}

func TestCommitsGrowDisplayListAndEmptyRedo(t *testing.T) {
	e := newTestEditor(t)
	for n := 1; n <= 10; n++ {
		e.PointerDown(float64(n), float64(n))
		if got := len(e.DisplayList()); got != n {
			t.Fatalf("after %d commits len(DisplayList()) = %d", n, got)
		}
		if got := len(e.RedoStack()); got != 0 {
			t.Fatalf("after %d commits len(RedoStack()) = %d", n, got)
		}
		e.PointerUp(float64(n), float64(n))
	}
}

func TestStrokeGeometry(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(10, 10), geom.Pt(20, 10), geom.Pt(20, 20))

	list := e.DisplayList()
	if len(list) != 1 {
		t.Fatalf("len(DisplayList()) = %d, want 1", len(list))
	}
	s := list[0].(*shape.Stroke)
	want := []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}
	if !slices.Equal(s.Points(), want) {
		t.Errorf("Points() = %v, want %v", s.Points(), want)
	}
	if s.Thickness() != 2 {
		t.Errorf("Thickness() = %v, want 2", s.Thickness())
	}
}

func TestLaterThicknessChangeDoesNotAffectCommitted(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(10, 10), geom.Pt(20, 10))
	e.ActiveTool().(*tool.Marker).SetThickness(12)
	draw(e, geom.Pt(30, 30), geom.Pt(40, 40))

	list := e.DisplayList()
	if got := list[0].(*shape.Stroke).Thickness(); got != 2 {
		t.Errorf("first stroke thickness = %v, want 2", got)
	}
	if got := list[1].(*shape.Stroke).Thickness(); got != 12 {
		t.Errorf("second stroke thickness = %v, want 12", got)
	}
}

func TestStickerDrag(t *testing.T) {
	e := newTestEditor(t)
	if err := e.SelectToolByName("🐸"); err != nil {
		t.Fatalf("SelectToolByName() error: %v", err)
	}
	r0 := e.ActiveTool().(*tool.StickerTool).Rotation()

	e.PointerDown(50, 50)
	e.PointerMove(70, 80)
	e.PointerUp(70, 80)

	s := e.DisplayList()[0].(*shape.Sticker)
	if math.Abs(s.Rotation()-(r0+1.0)) > 1e-9 {
		t.Errorf("Rotation() = %v, want %v", s.Rotation(), r0+1.0)
	}
	if s.Position() != geom.Pt(50, 50) {
		t.Errorf("Position() = %v, want (50,50)", s.Position())
	}
}

func TestUndoRedoAreInverses(t *testing.T) {
	e := newTestEditor(t)
	for i := 0; i < 4; i++ {
		draw(e, geom.Pt(float64(i), 0), geom.Pt(float64(i), 10))
	}
	e.Undo()

	before, beforeRedo := e.DisplayList(), e.RedoStack()

	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if !slices.Equal(e.DisplayList(), before) || !slices.Equal(e.RedoStack(), beforeRedo) {
		t.Error("undo(redo(S)) != S")
	}

	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	if !slices.Equal(e.DisplayList(), before) || !slices.Equal(e.RedoStack(), beforeRedo) {
		t.Error("redo(undo(S)) != S")
	}
}

func TestUndoMovesSameDrawable(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3))
	d := e.DisplayList()[0]

	e.Undo()
	if len(e.DisplayList()) != 0 {
		t.Fatalf("len(DisplayList()) = %d, want 0", len(e.DisplayList()))
	}
	if got := e.RedoStack(); len(got) != 1 || got[0] != d {
		t.Fatalf("RedoStack() = %v, want [%v]", got, d)
	}

	e.Redo()
	got := e.DisplayList()
	if len(got) != 1 || got[0] != d {
		t.Fatalf("DisplayList() = %v, want [%v]", got, d)
	}
	if got[0].(*shape.Stroke).Len() != 3 {
		t.Errorf("redone stroke lost points: %v", got[0].(*shape.Stroke).Points())
	}
}

func TestRedoOrderIsLIFO(t *testing.T) {
	e := newTestEditor(t)
	for i := 0; i < 3; i++ {
		draw(e, geom.Pt(float64(i), 0))
	}
	orig := e.DisplayList()
	e.Undo()
	e.Undo()
	e.Undo()
	e.Redo()
	if got := e.DisplayList(); len(got) != 1 || got[0] != orig[0] {
		t.Errorf("first redo restored %v, want %v", got, orig[0])
	}
	e.Redo()
	e.Redo()
	if !slices.Equal(e.DisplayList(), orig) {
		t.Error("full redo did not restore original order")
	}
}

func TestEmptyUndoRedoAreNoops(t *testing.T) {
	e := newTestEditor(t)
	got := record(e)

	if e.Undo() {
		t.Error("Undo() on empty = true")
	}
	if e.Redo() {
		t.Error("Redo() on empty = true")
	}
	if len(e.DisplayList()) != 0 || len(e.RedoStack()) != 0 {
		t.Error("state changed")
	}
	if len(*got) != 0 {
		t.Errorf("signals = %v, want none", *got)
	}
}

func TestCommitAfterUndoClearsRedo(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(1, 1))
	draw(e, geom.Pt(2, 2))
	e.Undo()
	if !e.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}

	e.PointerDown(3, 3)
	if e.CanRedo() {
		t.Error("CanRedo() = true after commit")
	}
	if e.Redo() {
		t.Error("Redo() = true after commit")
	}
}

func TestSelectToolDoesNotClearRedo(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(1, 1))
	e.Undo()
	if err := e.SelectToolByName("Thick"); err != nil {
		t.Fatal(err)
	}
	if len(e.RedoStack()) != 1 {
		t.Errorf("len(RedoStack()) = %d, want 1", len(e.RedoStack()))
	}
}

func TestClearEmptiesBothContainers(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(1, 1))
	draw(e, geom.Pt(2, 2))
	e.Undo()
	got := record(e)

	e.Clear()
	if len(e.DisplayList()) != 0 || len(e.RedoStack()) != 0 {
		t.Errorf("after Clear: display %d, redo %d", len(e.DisplayList()), len(e.RedoStack()))
	}
	if e.Redo() {
		t.Error("Redo() after Clear = true")
	}
	if !slices.Equal(*got, []Invalidation{InvalidateFull}) {
		t.Errorf("signals = %v, want [full]", *got)
	}
}

func TestClearWhileDrawing(t *testing.T) {
	e := newTestEditor(t)
	e.PointerDown(1, 1)
	e.Clear()
	if e.State() != Idle {
		t.Errorf("State() = %v, want idle", e.State())
	}
	e.PointerMove(5, 5)
	if len(e.DisplayList()) != 0 {
		t.Error("move after clear touched a dropped drawable")
	}
}

func TestTransitionsAndSignals(t *testing.T) {
	e := newTestEditor(t)
	got := record(e)

	steps := []struct {
		name      string
		do        func()
		wantState State
		wantInv   Invalidation
	}{
		{"idle move", func() { e.PointerMove(5, 5) }, Idle, InvalidatePreview},
		{"down", func() { e.PointerDown(5, 5) }, Drawing, InvalidateFull},
		{"drawing move", func() { e.PointerMove(6, 6) }, Drawing, InvalidateFull},
		{"up", func() { e.PointerUp(7, 7) }, Idle, InvalidatePreview},
		{"down again", func() { e.PointerDown(8, 8) }, Drawing, InvalidateFull},
		{"leave", func() { e.PointerLeave(9, 9) }, Idle, InvalidatePreview},
		{"idle up", func() { e.PointerUp(10, 10) }, Idle, InvalidatePreview},
		{"select", func() { e.SelectTool(e.ActiveTool()) }, Idle, InvalidatePreview},
		{"undo", func() { e.Undo() }, Idle, InvalidateFull},
		{"redo", func() { e.Redo() }, Idle, InvalidateFull},
		{"clear", func() { e.Clear() }, Idle, InvalidateFull},
	}
	for i, st := range steps {
		st.do()
		if e.State() != st.wantState {
			t.Errorf("%s: State() = %v, want %v", st.name, e.State(), st.wantState)
		}
		if len(*got) != i+1 {
			t.Fatalf("%s: %d signals, want %d", st.name, len(*got), i+1)
		}
		if inv := (*got)[i]; inv != st.wantInv {
			t.Errorf("%s: signal = %v, want %v", st.name, inv, st.wantInv)
		}
	}
}

func TestAnchorTracking(t *testing.T) {
	e := newTestEditor(t)
	e.PointerMove(12, 34)
	if got := e.ActiveTool().Anchor(); got != geom.Pt(12, 34) {
		t.Errorf("Anchor() after move = %v, want (12,34)", got)
	}

	e.PointerDown(40, 40)
	e.PointerMove(50, 50)
	if got := e.ActiveTool().Anchor(); got != geom.Pt(40, 40) {
		t.Errorf("Anchor() while drawing = %v, want (40,40)", got)
	}

	e.PointerUp(60, 60)
	if got := e.ActiveTool().Anchor(); got != geom.Pt(60, 60) {
		t.Errorf("Anchor() after up = %v, want (60,60)", got)
	}
}

func TestUndoWhileDrawingEndsDrawing(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(0, 0))
	e.PointerDown(1, 1)
	e.Undo()
	if e.Drawing() {
		t.Error("Drawing() = true after undo")
	}
	e.PointerMove(2, 2)
	if s := e.RedoStack()[0].(*shape.Stroke); s.Len() != 1 {
		t.Errorf("undone stroke was extended: %v", s.Points())
	}
	if s := e.DisplayList()[0].(*shape.Stroke); s.Len() != 1 {
		t.Errorf("earlier stroke was extended: %v", s.Points())
	}
}

func TestPointerDownWhileDrawing(t *testing.T) {
	e := newTestEditor(t)
	e.PointerDown(0, 0)
	e.PointerDown(5, 5)
	e.PointerMove(6, 6)

	list := e.DisplayList()
	if len(list) != 2 {
		t.Fatalf("len(DisplayList()) = %d, want 2", len(list))
	}
	if n := list[0].(*shape.Stroke).Len(); n != 1 {
		t.Errorf("first stroke has %d points, want 1", n)
	}
	if n := list[1].(*shape.Stroke).Len(); n != 2 {
		t.Errorf("second stroke has %d points, want 2", n)
	}
}

func TestSelectWhileDrawingKeepsDrawable(t *testing.T) {
	e := newTestEditor(t)
	e.PointerDown(0, 0)
	if err := e.SelectToolByName("🐸"); err != nil {
		t.Fatal(err)
	}
	e.PointerMove(3, 3)

	d, ok := e.InProgress()
	if !ok {
		t.Fatal("InProgress() ok = false after select")
	}
	if s := d.(*shape.Stroke); s.Len() != 2 {
		t.Errorf("in-progress stroke has %d points, want 2", s.Len())
	}
}

func TestSelectToolByNameUnknown(t *testing.T) {
	e := newTestEditor(t)
	got := record(e)
	err := e.SelectToolByName("nope")
	if !errors.Is(err, errors.ErrCodeToolNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeToolNotFound)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "Thin, Thick") {
		t.Errorf("message %q should list the registered tools", msg)
	}
	if e.ActiveTool().Name() != "Thin" {
		t.Errorf("ActiveTool() = %q, want Thin", e.ActiveTool().Name())
	}
	if len(*got) != 0 {
		t.Errorf("signals = %v, want none", *got)
	}
}

func TestStickerReselectionRandomizes(t *testing.T) {
	e := newTestEditor(t)
	st, _ := e.Tools().Get("🐸")
	seen := map[float64]bool{}
	for i := 0; i < 10; i++ {
		e.SelectTool(st)
		seen[st.(*tool.StickerTool).Rotation()] = true
	}
	if len(seen) < 9 {
		t.Errorf("%d distinct rotations over 10 selections", len(seen))
	}
}

func TestAddCustomTool(t *testing.T) {
	e := newTestEditor(t)
	got := record(e)

	for _, blank := range []string{"", "  \t"} {
		if _, ok := e.AddCustomTool(blank); ok {
			t.Errorf("AddCustomTool(%q) ok = true", blank)
		}
	}
	if e.Tools().Len() != 3 {
		t.Errorf("Tools().Len() = %d, want 3", e.Tools().Len())
	}

	tl, ok := e.AddCustomTool("🦄")
	if !ok {
		t.Fatal("AddCustomTool(🦄) ok = false")
	}
	if err := e.SelectToolByName("🦄"); err != nil {
		t.Fatalf("SelectToolByName(🦄) error: %v", err)
	}
	if e.ActiveTool() != tl {
		t.Error("ActiveTool() is not the custom tool")
	}
	if len(*got) != 1 {
		t.Errorf("signals = %v, want one from select", *got)
	}
}

func TestUnsubscribe(t *testing.T) {
	e := newTestEditor(t)
	var a, b int
	unsubA := e.Subscribe(func(Invalidation) { a++ })
	e.Subscribe(func(Invalidation) { b++ })

	e.PointerMove(1, 1)
	unsubA()
	unsubA()
	e.PointerMove(2, 2)

	if a != 1 || b != 2 {
		t.Errorf("calls a=%d b=%d, want 1 and 2", a, b)
	}
}

func TestSubscribersRunInOrder(t *testing.T) {
	e := newTestEditor(t)
	var order []int
	for i := 0; i < 3; i++ {
		e.Subscribe(func(Invalidation) { order = append(order, i) })
	}
	e.PointerMove(1, 1)
	if !slices.Equal(order, []int{0, 1, 2}) {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	e := newTestEditor(t)
	draw(e, geom.Pt(1, 1))
	draw(e, geom.Pt(2, 2))
	e.Undo()

	list := e.DisplayList()
	list[0] = nil
	redo := e.RedoStack()
	redo[0] = nil
	if e.DisplayList()[0] == nil || e.RedoStack()[0] == nil {
		t.Error("mutating accessor result changed editor state")
	}
}

type countingHooks struct {
	observability.NoopEditorHooks

	commits, undos, redos, clears, selects int
	dropped                                int
	kinds                                  []string
}

func (h *countingHooks) OnCommit(kind string, _ int) {
	h.commits++
	h.kinds = append(h.kinds, kind)
}
func (h *countingHooks) OnUndo(int, int)       { h.undos++ }
func (h *countingHooks) OnRedo(int, int)       { h.redos++ }
func (h *countingHooks) OnClear(dropped int)   { h.clears++; h.dropped = dropped }
func (h *countingHooks) OnToolSelected(string) { h.selects++ }

func TestEditorHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetEditorHooks(h)
	defer observability.Reset()

	e := newTestEditor(t)
	draw(e, geom.Pt(1, 1))
	e.SelectToolByName("🐸")
	draw(e, geom.Pt(2, 2))
	e.Undo()
	e.Undo()
	e.Undo()
	e.Redo()
	e.Clear()

	if h.commits != 2 || !slices.Equal(h.kinds, []string{"stroke", "sticker"}) {
		t.Errorf("commits = %d %v", h.commits, h.kinds)
	}
	if h.undos != 2 || h.redos != 1 || h.clears != 1 || h.selects != 1 {
		t.Errorf("undos=%d redos=%d clears=%d selects=%d", h.undos, h.redos, h.clears, h.selects)
	}
	if h.dropped != 2 {
		t.Errorf("dropped = %d, want 2", h.dropped)
	}
}

func TestWithHooks(t *testing.T) {
	global := &countingHooks{}
	observability.SetEditorHooks(global)
	defer observability.Reset()

	own := &countingHooks{}
	e := newTestEditor(t, WithHooks(own))
	draw(e, geom.Pt(1, 1))
	e.Undo()

	other := newTestEditor(t)
	draw(other, geom.Pt(1, 1))

	if own.commits != 1 || own.undos != 1 {
		t.Errorf("injected hooks: commits=%d undos=%d, want 1 and 1", own.commits, own.undos)
	}
	if global.commits != 1 || global.undos != 0 {
		t.Errorf("global hooks: commits=%d undos=%d, want 1 and 0", global.commits, global.undos)
	}
}
