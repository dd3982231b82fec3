package script

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/shape"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	reg := tool.NewRegistry(tool.NewRand(1))
	reg.Add(tool.NewMarker("Thin", 2))
	reg.Add(tool.NewMarker("Thick", 6))
	reg.Add(tool.NewSticker("🐸", reg.Rand()))
	e, err := editor.New(reg)
	if err != nil {
		t.Fatalf("editor.New() error: %v", err)
	}
	return e
}

const frogScript = `
title = "frog on a line"
seed = 42

[[steps]]
action = "select"
tool = "Thick"

[[steps]]
action = "drag"
x = 20
y = 200
to_x = 236
to_y = 200
frames = 4

[[steps]]
action = "select"
tool = "🐸"

[[steps]]
action = "down"
x = 128
y = 128

[[steps]]
action = "move"
x = 148
y = 128

[[steps]]
action = "up"
x = 148
y = 128
`

func TestParseAndRun(t *testing.T) {
	s, err := Parse([]byte(frogScript))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Title != "frog on a line" || s.Seed != 42 || len(s.Steps) != 6 {
		t.Fatalf("script = %+v", s)
	}

	e := newEditor(t)
	if err := s.Run(e); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if e.Drawing() {
		t.Error("Drawing() = true after script, want false")
	}

	list := e.DisplayList()
	if len(list) != 2 {
		t.Fatalf("len(DisplayList()) = %d, want 2", len(list))
	}
	stroke, ok := list[0].(*shape.Stroke)
	if !ok {
		t.Fatalf("list[0] = %T, want *shape.Stroke", list[0])
	}
	// down + 4 moves.
	if stroke.Len() != 5 || stroke.Thickness() != 6 {
		t.Errorf("stroke len, thickness = %d, %v, want 5, 6", stroke.Len(), stroke.Thickness())
	}
	pts := stroke.Points()
	if last := pts[len(pts)-1]; last.X != 236 || last.Y != 200 {
		t.Errorf("last point = %v, want (236, 200)", last)
	}

	sticker, ok := list[1].(*shape.Sticker)
	if !ok {
		t.Fatalf("list[1] = %T, want *shape.Sticker", list[1])
	}
	if got, want := sticker.Rotation()-sticker.BaseRotation(), 1.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("drag rotation = %v, want %v", got, want)
	}
}

func TestRunCommands(t *testing.T) {
	s, err := Parse([]byte(`
[[steps]]
action = "drag"
[[steps]]
action = "drag"
x = 10
[[steps]]
action = "undo"
[[steps]]
action = "undo"
[[steps]]
action = "redo"
[[steps]]
action = "custom"
symbol = "🦄"
[[steps]]
action = "select"
tool = "🦄"
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	e := newEditor(t)
	if err := s.Run(e); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := len(e.DisplayList()); got != 1 {
		t.Errorf("len(DisplayList()) = %d, want 1", got)
	}
	if got := len(e.RedoStack()); got != 1 {
		t.Errorf("len(RedoStack()) = %d, want 1", got)
	}
	if got := e.ActiveTool().Name(); got != "🦄" {
		t.Errorf("ActiveTool() = %q, want 🦄", got)
	}
}

func TestRunClear(t *testing.T) {
	s, err := Parse([]byte(`
[[steps]]
action = "drag"
[[steps]]
action = "clear"
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	e := newEditor(t)
	if err := s.Run(e); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if e.CanUndo() || e.CanRedo() {
		t.Errorf("CanUndo, CanRedo = %v, %v, want false, false", e.CanUndo(), e.CanRedo())
	}
}

func TestRunUnknownTool(t *testing.T) {
	s, err := Parse([]byte(`
[[steps]]
action = "drag"
[[steps]]
action = "select"
tool = "Crayon"
[[steps]]
action = "clear"
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	e := newEditor(t)
	err = s.Run(e)
	if !errors.Is(err, errors.ErrCodeInvalidScript) {
		t.Fatalf("Run() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidScript)
	}
	// Steps before the failure stay applied; later ones never run.
	if got := len(e.DisplayList()); got != 1 {
		t.Errorf("len(DisplayList()) = %d, want 1", got)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"empty", ``},
		{"syntax", `[[steps]`},
		{"unknown key", "[[steps]]\naction = \"down\"\npressure = 1"},
		{"missing action", "[[steps]]\nx = 1"},
		{"unknown action", "[[steps]]\naction = \"jump\""},
		{"select without tool", "[[steps]]\naction = \"select\""},
		{"control symbol", "[[steps]]\naction = \"custom\"\nsymbol = \"\\u0007\""},
		{"negative frames", "[[steps]]\naction = \"drag\"\nframes = -1"},
		{"nan coordinate", "[[steps]]\naction = \"down\"\nx = nan\ny = 1"},
		{"infinite drag target", "[[steps]]\naction = \"drag\"\nto_x = inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, errors.ErrCodeInvalidScript) {
				t.Errorf("Parse() code = %v, want %v (err: %v)", errors.GetCode(err), errors.ErrCodeInvalidScript, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frog.toml")
	if err := os.WriteFile(path, []byte(frogScript), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(s.Steps) != 6 {
		t.Errorf("len(Steps) = %d, want 6", len(s.Steps))
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}
