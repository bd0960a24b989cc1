package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/healthdays/internal/aggregate"
	"github.com/meltforce/healthdays/internal/metrics"
)

func (s *Server) handleListDays(w http.ResponseWriter, r *http.Request) {
	days, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error("loading snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(aggregate.DateLayout, date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	days, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error("loading snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	day, ok := days[date]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no record for " + date})
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Names)
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	days, err := s.store.Load(r.Context())
	if err != nil {
		s.log.Error("loading snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	value, err := metrics.Evaluate(name, days)
	if errors.Is(err, metrics.ErrUnknownMetric) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown metric " + name})
		return
	}
	if errors.Is(err, metrics.ErrNoData) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no data for metric " + name})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"metric": name, "value": value})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "refresh not configured"})
		return
	}

	_, result, err := s.runner.Refresh(r.Context())
	if err != nil {
		s.log.Error("refresh error", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
