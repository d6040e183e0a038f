// Package http exposes the report-generation API plus health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alfieprojectsdev/har-automation/internal/parser"
	"github.com/alfieprojectsdev/har-automation/internal/pipeline"
)

// ReportGenerator is the boundary operation the API calls.
type ReportGenerator interface {
	GenerateReports(ctx context.Context, rawText string) ([]pipeline.GeneratedReport, error)
}

// Server exposes the generate API and operational HTTP endpoints.
type Server struct {
	httpServer    *http.Server
	generator     ReportGenerator
	logger        *slog.Logger
	maxInputBytes int
}

// NewServer creates an HTTP server with /api/generate, /healthz,
// /readyz, and /metrics routes. maxInputBytes bounds the request body
// before the parser ever sees it.
func NewServer(addr string, generator ReportGenerator, maxInputBytes int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		generator:     generator,
		logger:        logger,
		maxInputBytes: maxInputBytes,
	}

	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
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

type generateRequest struct {
	SummaryTable string `json:"summary_table"`
}

type generateResponse struct {
	Success bool                       `json:"success"`
	HARs    []pipeline.GeneratedReport `json:"hars,omitempty"`
	Error   string                     `json:"error,omitempty"`
}

// handleGenerate parses the posted summary table and returns the
// rendered reports. Clients get a generic failure message; the detailed
// cause goes to the server log only.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, int64(s.maxInputBytes))

	var req generateRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.logger.Warn("generate request too large", "limit_bytes", s.maxInputBytes)
			writeJSON(w, http.StatusRequestEntityTooLarge, generateResponse{
				Error: "input too large",
			})
			return
		}
		s.logger.Warn("generate request malformed", "error", err)
		writeJSON(w, http.StatusBadRequest, generateResponse{
			Error: "invalid request body",
		})
		return
	}

	reports, err := s.generator.GenerateReports(r.Context(), req.SummaryTable)
	if err != nil {
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			s.logger.Warn("generate rejected input", "error", err)
			writeJSON(w, http.StatusUnprocessableEntity, generateResponse{
				Error: "could not extract any assessment from the input",
			})
			return
		}
		s.logger.Error("generate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, generateResponse{
			Error: "report generation failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success: true,
		HARs:    reports,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleReady reports ready as soon as the server is up: the rulebook
// is loaded and validated before the server is constructed, so there is
// no warm-up phase.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
