// Package server exposes sketchpad editors over HTTP.
//
// Each session owns one editor. Clients create a session, stream pointer
// events and commands into it, and fetch rendered frames or exports:
//
//	POST   /sessions                     create a session
//	GET    /sessions/{id}                session state
//	DELETE /sessions/{id}                drop a session and its cached exports
//	POST   /sessions/{id}/events         pointer events
//	POST   /sessions/{id}/undo           undo
//	POST   /sessions/{id}/redo           redo
//	POST   /sessions/{id}/clear          clear
//	GET    /sessions/{id}/tools          list tools
//	POST   /sessions/{id}/tools          add a custom sticker tool
//	PUT    /sessions/{id}/tool           select a tool
//	GET    /sessions/{id}/frame.png      canvas-sized frame with tool preview
//	GET    /sessions/{id}/export.{fmt}   export as png, svg, or json
//
// Errors are JSON objects {"code": ..., "message": ...} with the status
// derived from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/config"
	"github.com/matzehuels/sketchpad/pkg/pipeline"
	"github.com/matzehuels/sketchpad/pkg/session"
)

const (
	// DefaultCleanupInterval is how often expired sessions are swept.
	DefaultCleanupInterval = time.Minute

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// prefixDeleter is implemented by caches that can drop a session's keys.
type prefixDeleter interface {
	DeletePrefix(ctx context.Context, prefix string) int
}

// Server is the HTTP host.
type Server struct {
	cfg    config.Config
	store  session.Store
	cache  cache.Cache
	runner *pipeline.Runner
	logger *log.Logger
	ttl    time.Duration
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithStore replaces the in-memory session store.
func WithStore(s session.Store) Option { return func(srv *Server) { srv.store = s } }

// WithCache sets the export cache. Default is an in-memory cache.
func WithCache(c cache.Cache) Option { return func(srv *Server) { srv.cache = c } }

// WithSessionTTL sets how long idle sessions live. Zero keeps them forever.
func WithSessionTTL(d time.Duration) Option { return func(srv *Server) { srv.ttl = d } }

// New creates a server for cfg. cfg must already be validated.
func New(cfg config.Config, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		ttl:    session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore(cfg.Server.MaxSessions, session.WithEvictFunc(func(id string) {
			s.dropArtifacts(context.Background(), id)
		}))
	}
	if s.cache == nil {
		s.cache = cache.NewMemoryCache(cache.DefaultMemoryEntries)
	}
	s.runner = pipeline.NewRunner(s.cache, nil, logger)
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleState)
			r.Delete("/", s.handleDelete)
			r.Post("/events", s.handleEvents)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Post("/clear", s.handleClear)
			r.Get("/tools", s.handleTools)
			r.Post("/tools", s.handleAddTool)
			r.Put("/tool", s.handleSelectTool)
			r.Get("/frame.png", s.handleFrame)
			for _, format := range []string{pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatJSON} {
				r.Get("/export."+format, s.handleExport(format))
			}
		})
	})
	return r
}

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled, then shuts
// down gracefully. Expired sessions are swept in the background.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx, DefaultCleanupInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *Server) cleanup(ctx context.Context) {
	removed, err := s.store.Cleanup(ctx)
	if err != nil {
		s.logger.Warn("session cleanup failed", "error", err)
		return
	}
	for _, id := range removed {
		s.dropArtifacts(ctx, id)
	}
	if len(removed) > 0 {
		s.logger.Debug("expired sessions", "count", len(removed))
	}
}

func (s *Server) dropArtifacts(ctx context.Context, id string) {
	if pd, ok := s.cache.(prefixDeleter); ok {
		pd.DeletePrefix(ctx, sessionPrefix(id))
	}
}

func sessionPrefix(id string) string { return "session:" + id + ":" }
