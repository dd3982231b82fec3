package cli

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sketchpad/pkg/config"
	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/pipeline"
	"github.com/matzehuels/sketchpad/pkg/render"
	"github.com/matzehuels/sketchpad/pkg/surface"
)

// Toolbar styles
var (
	toolActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	toolNormalStyle = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle       = lipgloss.NewStyle().Foreground(colorDim)
	promptStyle     = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	// chrome is the number of terminal rows that are not canvas.
	chrome    = 2
	halfBlock = "▀"
)

// viewport is a surface whose identity transform maps canvas pixels onto a
// smaller grid of terminal half-cells.
type viewport struct {
	surface.Surface
	scale float64
}

func (v viewport) ResetTransform() {
	v.Surface.ResetTransform()
	v.Surface.Scale(v.scale, v.scale)
}

// =============================================================================
// DrawModel - Interactive terminal canvas
// =============================================================================

// DrawModel is the bubbletea model for the terminal sketchpad. Every cell
// shows two vertically stacked canvas pixels using a half block.
type DrawModel struct {
	ctx    context.Context
	editor *editor.Editor
	cfg    config.Config
	runner *pipeline.Runner
	output string // export base path

	termW, termH int
	raster       *surface.Raster
	view         viewport
	canvas       string

	invalidated bool
	inv         editor.Invalidation
	pointerIn   bool

	prompting bool
	input     []rune
	status    string
	failed    bool // status reports an error

	unsubscribe func()
}

// NewDrawModel creates a model over e. Exports go to output.<format>.
func NewDrawModel(ctx context.Context, e *editor.Editor, cfg config.Config, runner *pipeline.Runner, output string) *DrawModel {
	m := &DrawModel{
		ctx:    contextOrBackground(ctx),
		editor: e,
		cfg:    cfg,
		runner: runner,
		output: output,
		status: "a: add sticker  e: export  u/r: undo/redo  c: clear  q: quit",
	}
	m.unsubscribe = e.Subscribe(func(inv editor.Invalidation) {
		// Full wins over preview within one update.
		if !m.invalidated || inv == editor.InvalidateFull {
			m.inv = inv
		}
		m.invalidated = true
	})
	return m
}

func (m *DrawModel) Init() tea.Cmd {
	return nil
}

func (m *DrawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	if m.invalidated {
		m.paint(m.inv)
		m.invalidated = false
	}
	return m, cmd
}

func (m *DrawModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.prompting {
		m.handlePromptKey(msg)
		return nil
	}

	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		m.unsubscribe()
		return tea.Quit
	case "u", "ctrl+z":
		if !m.editor.Undo() {
			m.status = "Nothing to undo"
		}
	case "r", "ctrl+y":
		if !m.editor.Redo() {
			m.status = "Nothing to redo"
		}
	case "c":
		m.editor.Clear()
	case "tab":
		m.cycleTool(1)
	case "shift+tab":
		m.cycleTool(-1)
	case "a":
		m.prompting = true
		m.input = m.input[:0]
	case "e":
		m.export()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.selectIndex(int(key[0] - '1'))
		}
	}
	return nil
}

// handlePromptKey edits the custom sticker prompt. Enter adds and selects the
// tool; esc cancels. An empty answer adds nothing.
func (m *DrawModel) handlePromptKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.prompting = false
		symbol := string(m.input)
		if err := errors.ValidateSymbol(symbol); err != nil {
			m.setError(errors.UserMessage(err))
			return
		}
		if t, ok := m.editor.AddCustomTool(symbol); ok {
			m.editor.SelectTool(t)
			m.status = "Added " + t.Name()
			m.failed = false
		}
	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompting = false
	case tea.KeyBackspace:
		if n := len(m.input); n > 0 {
			m.input = m.input[:n-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
}

func (m *DrawModel) cycleTool(step int) {
	all := m.editor.Tools().All()
	cur := 0
	for i, t := range all {
		if t == m.editor.ActiveTool() {
			cur = i
			break
		}
	}
	m.selectIndex((cur + step + len(all)) % len(all))
}

func (m *DrawModel) selectIndex(i int) {
	all := m.editor.Tools().All()
	if i < 0 || i >= len(all) {
		return
	}
	m.editor.SelectTool(all[i])
}

func (m *DrawModel) handleMouse(msg tea.MouseMsg) {
	if m.raster == nil {
		return
	}
	x, y, inside := m.toCanvas(msg.X, msg.Y)

	if !inside {
		if m.pointerIn {
			m.pointerIn = false
			m.editor.PointerLeave(x, y)
		}
		return
	}
	m.pointerIn = true

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.editor.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.editor.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.editor.PointerUp(x, y)
	}
}

// toCanvas maps a terminal cell to canvas pixels at the center of the cell's
// upper half. inside reports whether the cell lies on the canvas.
func (m *DrawModel) toCanvas(col, row int) (x, y float64, inside bool) {
	gx := float64(col) + 0.5
	gy := float64(row-1)*2 + 0.5
	w, h := m.raster.Size()
	inside = row >= 1 && gx < float64(w) && gy >= 0 && gy < float64(h)
	return gx / m.view.scale, gy / m.view.scale, inside
}

func (m *DrawModel) resize(termW, termH int) {
	m.termW, m.termH = termW, termH
	gridW := termW
	gridH := (termH - chrome) * 2
	if gridW < 1 || gridH < 1 {
		m.raster = nil
		return
	}

	scale := render.ExportScale(m.cfg.Canvas.Width, m.cfg.Canvas.Height, gridW, gridH)
	w := max(1, int(math.Floor(float64(m.cfg.Canvas.Width)*scale)))
	h := max(1, int(math.Floor(float64(m.cfg.Canvas.Height)*scale)))

	r, err := surface.NewRaster(w, h)
	if err != nil {
		m.status = errors.UserMessage(err)
		m.raster = nil
		return
	}
	m.raster = r
	m.view = viewport{Surface: r, scale: scale}
	m.paint(editor.InvalidatePreview)
}

func (m *DrawModel) paint(inv editor.Invalidation) {
	if m.raster == nil {
		return
	}
	render.Frame(m.view, m.editor.DisplayList(), m.editor.ActiveTool(), inv)
	m.canvas = halfBlocks(m.raster.Image())
}

func (m *DrawModel) export() {
	opts := m.cfg.ExportOptions(pipeline.FormatPNG)
	result, err := m.runner.Export(m.ctx, m.editor.DisplayList(), opts)
	if err != nil {
		m.setError("Export failed: " + errors.UserMessage(err))
		return
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, m.output)
	if err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	m.status = "Exported " + strings.Join(paths, ", ")
	m.failed = false
}

func (m *DrawModel) setError(msg string) {
	m.status = msg
	m.failed = true
}

func (m *DrawModel) View() string {
	if m.raster == nil {
		return "Terminal too small"
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sketchpad"))
	b.WriteString("  ")
	for i, t := range m.editor.Tools().All() {
		label := fmt.Sprintf("%d %s", i+1, t.Name())
		if t == m.editor.ActiveTool() {
			b.WriteString(toolActiveStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(toolNormalStyle.Render(" " + label + " "))
		}
	}
	b.WriteString("\n")

	b.WriteString(m.canvas)

	if m.prompting {
		b.WriteString(promptStyle.Render("Sticker: " + string(m.input) + "█"))
	} else {
		status := helpStyle
		if m.failed {
			status = StyleError
		}
		b.WriteString(status.Render(fmt.Sprintf("%d shapes  %s", len(m.editor.DisplayList()), m.status)))
	}
	return b.String()
}

// halfBlocks renders img with one terminal cell per two vertical pixels.
// Colors are quantized to gray levels so runs of equal cells share a style.
func halfBlocks(img image.Image) string {
	bounds := img.Bounds()
	styles := make(map[[2]uint8]lipgloss.Style)
	style := func(key [2]uint8) lipgloss.Style {
		if s, ok := styles[key]; ok {
			return s
		}
		s := lipgloss.NewStyle().Foreground(grayColor(key[0])).Background(grayColor(key[1]))
		styles[key] = s
		return s
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var run strings.Builder
		var runKey [2]uint8
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style(runKey).Render(run.String()))
				run.Reset()
			}
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			key := [2]uint8{grayLevel(img.At(x, y)), 15}
			if y+1 < bounds.Max.Y {
				key[1] = grayLevel(img.At(x, y+1))
			}
			if key != runKey {
				flush()
				runKey = key
			}
			run.WriteString(halfBlock)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// grayLevel maps a color to one of 16 gray levels, 0 black to 15 white.
func grayLevel(c color.Color) uint8 {
	g := color.GrayModel.Convert(c).(color.Gray)
	return g.Y >> 4
}

func grayColor(level uint8) lipgloss.Color {
	v := level<<4 | level
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
}
