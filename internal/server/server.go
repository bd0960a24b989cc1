// Package server exposes the day snapshot over HTTP: read endpoints for the
// merged day records and metrics, plus an authenticated refresh endpoint
// that re-runs the aggregation pipeline.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/healthdays/internal/pipeline"
	"github.com/meltforce/healthdays/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  storage.Store
	runner *pipeline.Runner
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. runner may be nil, in
// which case the refresh endpoint returns 503.
func New(store storage.Store, runner *pipeline.Runner, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		runner: runner,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access when enabled)
	s.router.Get("/api/v1/days", s.handleListDays)
	s.router.Get("/api/v1/days/{date}", s.handleGetDay)
	s.router.Get("/api/v1/metrics", s.handleListMetrics)
	s.router.Get("/api/v1/metrics/{name}", s.handleMetric)

	// Refresh endpoint (API key required)
	s.router.Route("/api/v1/refresh", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleRefresh)
	})
}
