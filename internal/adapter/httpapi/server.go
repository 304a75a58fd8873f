// Package httpapi exposes the scoring service over HTTP, plus the health,
// readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/catalog"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/history"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ScoreService runs one assessment; implemented by scoring.Scorer.
type ScoreService interface {
	Score(ctx context.Context, app domain.Application) (domain.Assessment, error)
}

// Server exposes the scoring API and operational HTTP endpoints.
type Server struct {
	httpServer *http.Server
	scorer     ScoreService
	catalog    *catalog.Catalog
	history    *history.Store
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes wired.
func NewServer(addr string, scorer ScoreService, ready ReadinessChecker, cat *catalog.Catalog, hist *history.Store, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      loggingMiddleware(logger, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scorer:  scorer,
		catalog: cat,
		history: hist,
		logger:  logger,
	}

	mux.HandleFunc("POST /api/v1/score", s.handleScore)
	mux.HandleFunc("GET /api/v1/locations", s.handleLocations)
	mux.HandleFunc("GET /api/v1/history", s.handleHistoryList)
	mux.HandleFunc("POST /api/v1/history", s.handleHistoryAdd)
	mux.HandleFunc("POST /api/v1/history/clear", s.handleHistoryClear)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var app domain.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		writeErrorKind(w, http.StatusBadRequest, domain.KindValidation, "invalid JSON body")
		return
	}

	assessment, err := s.scorer.Score(r.Context(), app)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Remember the scored place for quick re-selection.
	if s.history != nil {
		if place := placeLabel(assessment.Location); place != "" {
			s.history.Add(place, assessment.Location.Lat, assessment.Location.Lon)
		}
	}

	writeJSON(w, http.StatusOK, assessment)
}

func placeLabel(loc domain.Location) string {
	switch {
	case loc.City != "" && loc.State != "":
		return loc.City + ", " + loc.State
	case loc.City != "":
		return loc.City
	default:
		return loc.State
	}
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"states": s.catalog.List()})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.history.Recent()})
}

func (s *Server) handleHistoryAdd(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Place string  `json:"place"`
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorKind(w, http.StatusBadRequest, domain.KindValidation, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Place) == "" {
		writeErrorKind(w, http.StatusBadRequest, domain.KindValidation, "place is required")
		return
	}

	s.history.Add(in.Place, in.Lat, in.Lon)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, _ *http.Request) {
	s.history.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Caller
// mistakes are 400s; provider trouble (including bad provider data) is a 502
// because the fault sits upstream of this service.
func writeDomainError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindValidation, domain.KindLocation:
		status = http.StatusBadRequest
	case domain.KindProviderUnavailable, domain.KindDataValidation:
		status = http.StatusBadGateway
	}

	msg := err.Error()
	if kind == "" {
		kind = "internal"
		msg = "internal error"
	}
	writeErrorKind(w, status, kind, msg)
}

func writeErrorKind(w http.ResponseWriter, status int, kind domain.ErrorKind, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"kind":    string(kind),
			"message": msg,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
