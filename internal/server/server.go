// Package server exposes puzzle generation and the puzzle archive over HTTP.
//
// Routes:
//
//	GET  /healthz                      build info
//	GET  /puzzle.{format}              generate from query parameters
//	POST /api/puzzles                  archive a configuration
//	GET  /api/puzzles                  list archived puzzles, newest first
//	GET  /api/puzzles/{id}             one archived configuration
//	GET  /api/puzzles/{id}/{format}    render an archived puzzle
//
// Errors are JSON objects {"code": ..., "message": ...}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/store"
)

const (
	maxBodySize     = 64 << 10
	shutdownTimeout = 10 * time.Second
)

// Server is the HTTP front end for the pipeline and the archive.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	createRL *rateLimiter
	renderRL *rateLimiter
}

// New creates a configured server. A nil store selects an in-memory archive.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router:   chi.NewRouter(),
		runner:   runner,
		store:    st,
		logger:   logger,
		createRL: newRateLimiter(30, time.Minute),  // 30 archived puzzles/min per IP
		renderRL: newRateLimiter(120, time.Minute), // 120 renders/min per IP
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)
	r.With(limit(s.renderRL)).Get("/puzzle.{format}", s.handleGenerate)

	r.Route("/api/puzzles", func(r chi.Router) {
		r.With(limit(s.createRL)).Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.With(limit(s.renderRL)).Get("/{id}/{format}", s.handleRender)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
