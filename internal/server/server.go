// Package server exposes the export pipeline over HTTP.
//
// # Routes
//
//	GET  /health   liveness and version
//	POST /export   document body → .drawio attachment
//	POST /summary  document body → page and edge counts as JSON
//	POST /preview  document body → SVG, PNG or PDF of one page
//
// Request bodies are JSON documents, or YAML when the Content-Type is
// application/yaml. Options are passed as query parameters. Errors are JSON
// objects with a machine-readable code:
//
//	{"code": "PAGE_NOT_FOUND", "message": "page \"Billing\" not found"}
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/c4export/pkg/pipeline"
)

// Defaults for [Options].
const (
	DefaultMaxBodyBytes    = 10 << 20
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRequestTimeout  = 60 * time.Second
)

// Options configure a Server.
type Options struct {
	// Runner executes exports. Nil uses an uncached runner.
	Runner *pipeline.Runner
	// Defaults are applied to every export before query parameters.
	Defaults pipeline.Options
	// MaxBodyBytes bounds request documents.
	MaxBodyBytes int64
	// Logger receives request logs. Nil discards.
	Logger *log.Logger
	// Now overrides the clock used for file names.
	Now func() time.Time
}

// Server serves exports over HTTP.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	maxBody  int64
	logger   *log.Logger
	now      func() time.Time
}

// New creates a server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		runner:   opts.Runner,
		defaults: opts.Defaults,
		maxBody:  opts.MaxBodyBytes,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(DefaultRequestTimeout))

	r.Get("/health", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json", "application/yaml", "application/x-yaml", "text/yaml"))
		r.Post("/export", s.handleExport)
		r.Post("/summary", s.handleSummary)
		r.Post("/preview", s.handlePreview)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorCode(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
