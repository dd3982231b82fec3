package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/fonts"
	"github.com/matzehuels/sketchpad/pkg/geom"
	"github.com/matzehuels/sketchpad/pkg/pipeline"
	"github.com/matzehuels/sketchpad/pkg/render"
	"github.com/matzehuels/sketchpad/pkg/session"
	"github.com/matzehuels/sketchpad/pkg/surface"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

// =============================================================================
// Wire types
// =============================================================================

type toolInfo struct {
	Name      string     `json:"name"`
	Kind      tool.Kind  `json:"kind"`
	Thickness float64    `json:"thickness,omitempty"`
	Symbol    string     `json:"symbol,omitempty"`
	Rotation  float64    `json:"rotation,omitempty"` // radians
	Anchor    geom.Point `json:"anchor"`
}

type shapeInfo struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

type stateResponse struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	ExpiresAt  *time.Time  `json:"expires_at,omitempty"`
	State      string      `json:"state"`
	ActiveTool string      `json:"active_tool"`
	Tools      []toolInfo  `json:"tools"`
	Shapes     []shapeInfo `json:"shapes"`
	RedoDepth  int         `json:"redo_depth"`
	CanUndo    bool        `json:"can_undo"`
	CanRedo    bool        `json:"can_redo"`
	Changed    *bool       `json:"changed,omitempty"` // undo/redo only
}

// Event is one pointer event in a POST /events body.
type Event struct {
	Type string  `json:"type"` // down, move, up, leave
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type eventsRequest struct {
	Events []Event `json:"events"`
}

type addToolRequest struct {
	Symbol string `json:"symbol"`
}

type selectToolRequest struct {
	Name string `json:"name"`
}

func describeTool(t tool.Tool) toolInfo {
	info := toolInfo{Name: t.Name(), Kind: t.Kind(), Anchor: t.Anchor()}
	switch v := t.(type) {
	case *tool.Marker:
		info.Thickness = v.Thickness()
	case *tool.StickerTool:
		info.Symbol = v.Symbol()
		info.Rotation = v.Rotation()
	}
	return info
}

func describeTools(reg *tool.Registry) []toolInfo {
	all := reg.All()
	out := make([]toolInfo, len(all))
	for i, t := range all {
		out[i] = describeTool(t)
	}
	return out
}

func describe(sess *session.Session, e *editor.Editor) stateResponse {
	list := e.DisplayList()
	shapes := make([]shapeInfo, len(list))
	for i, d := range list {
		shapes[i] = shapeInfo{ID: d.ID(), Kind: string(d.Kind())}
	}
	resp := stateResponse{
		ID:         sess.ID,
		CreatedAt:  sess.CreatedAt,
		State:      e.State().String(),
		ActiveTool: e.ActiveTool().Name(),
		Tools:      describeTools(e.Tools()),
		Shapes:     shapes,
		RedoDepth:  len(e.RedoStack()),
		CanUndo:    e.CanUndo(),
		CanRedo:    e.CanRedo(),
	}
	if exp := sess.ExpiresAt(); !exp.IsZero() {
		resp.ExpiresAt = &exp
	}
	return resp
}

// =============================================================================
// Session lifecycle
// =============================================================================

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	hooks := &sessionHooks{logger: s.logger}
	sess, err := session.New(s.cfg.SessionRegistry, s.ttl, editor.WithHooks(hooks))
	if err != nil {
		writeError(w, err)
		return
	}
	hooks.logger = s.logger.With("session", sess.ID)
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID)

	var resp stateResponse
	_ = sess.Do(func(e *editor.Editor) error {
		resp = describe(sess, e)
		return nil
	})
	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.dropArtifacts(r.Context(), id)
	s.logger.Debug("session deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// withSession loads the session named in the URL and runs fn under its lock,
// then responds with the resulting state.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(e *editor.Editor, resp *stateResponse) error) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var resp stateResponse
	err = sess.Do(func(e *editor.Editor) error {
		if err := fn(e, &resp); err != nil {
			return err
		}
		changed := resp.Changed
		resp = describe(sess, e)
		resp.Changed = changed
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(*editor.Editor, *stateResponse) error { return nil })
}

// =============================================================================
// Input and commands
// =============================================================================

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var req eventsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	// Reject the whole batch before touching the editor.
	for i, ev := range req.Events {
		switch ev.Type {
		case "down", "move", "up", "leave":
		default:
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "events[%d]: unknown type %q", i, ev.Type))
			return
		}
	}
	s.withSession(w, r, func(e *editor.Editor, _ *stateResponse) error {
		for _, ev := range req.Events {
			switch ev.Type {
			case "down":
				e.PointerDown(ev.X, ev.Y)
			case "move":
				e.PointerMove(ev.X, ev.Y)
			case "up":
				e.PointerUp(ev.X, ev.Y)
			case "leave":
				e.PointerLeave(ev.X, ev.Y)
			}
		}
		return nil
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *editor.Editor, resp *stateResponse) error {
		changed := e.Undo()
		resp.Changed = &changed
		return nil
	})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *editor.Editor, resp *stateResponse) error {
		changed := e.Redo()
		resp.Changed = &changed
		return nil
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *editor.Editor, _ *stateResponse) error {
		e.Clear()
		return nil
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var tools []toolInfo
	_ = sess.Do(func(e *editor.Editor) error {
		tools = describeTools(e.Tools())
		return nil
	})
	writeJSON(w, http.StatusOK, tools)
}

// handleAddTool registers a custom sticker. A blank symbol is accepted and
// changes nothing.
func (s *Server) handleAddTool(w http.ResponseWriter, r *http.Request) {
	var req addToolRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateSymbol(req.Symbol); err != nil {
		writeError(w, err)
		return
	}
	s.withSession(w, r, func(e *editor.Editor, _ *stateResponse) error {
		e.AddCustomTool(req.Symbol)
		return nil
	})
}

func (s *Server) handleSelectTool(w http.ResponseWriter, r *http.Request) {
	var req selectToolRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.withSession(w, r, func(e *editor.Editor, _ *stateResponse) error {
		return e.SelectToolByName(req.Name)
	})
}

// =============================================================================
// Rendering
// =============================================================================

// handleFrame renders what an interactive host would show: the display list
// plus the active tool's preview, at canvas size.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	face, err := fonts.LoadFile(s.cfg.Font, fonts.GlyphSize)
	if err != nil {
		writeError(w, err)
		return
	}
	raster, err := surface.NewRaster(s.cfg.Canvas.Width, s.cfg.Canvas.Height, surface.WithFontFace(face))
	if err != nil {
		writeError(w, err)
		return
	}

	_ = sess.Do(func(e *editor.Editor) error {
		render.WithPreview(raster, e.DisplayList(), e.ActiveTool())
		return nil
	})

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatPNG))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// handleExport encodes the display list. Query parameters width, height,
// background, and refresh override the configured export settings.
func (s *Server) handleExport(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.export(w, r, format)
	}
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, format string) {
	opts, err := s.exportOptions(r, format)
	if err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	runner := s.runner.WithKeyer(cache.NewScopedKeyer(nil, sessionPrefix(id)))
	var result *pipeline.Result
	err = sess.Do(func(e *editor.Editor) error {
		var err error
		result, err = runner.Export(r.Context(), e.DisplayList(), opts)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("ETag", strconv.Quote(result.Fingerprint))
	w.Header().Set("X-Cache", cacheStatus(result.CacheHit))
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) exportOptions(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.cfg.ExportOptions(format)
	q := r.URL.Query()

	var err error
	if v := q.Get("width"); v != "" {
		if opts.Width, err = strconv.Atoi(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "width: %q is not an integer", v)
		}
	}
	if v := q.Get("height"); v != "" {
		if opts.Height, err = strconv.Atoi(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "height: %q is not an integer", v)
		}
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if v := q.Get("ink"); v != "" {
		opts.Ink = v
	}
	if v := q.Get("refresh"); v != "" {
		if opts.Refresh, err = strconv.ParseBool(v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh: %q is not a boolean", v)
		}
	}
	return opts, opts.Validate()
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// =============================================================================
// JSON helpers
// =============================================================================

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
