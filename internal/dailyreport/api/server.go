// Package api serves reports over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/report"
	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/store"
)

// Assembler builds a fresh report.
type Assembler interface {
	Assemble(ctx context.Context) (*report.Report, error)
}

// History returns previously stored reports.
type History interface {
	Latest(ctx context.Context) (*store.Record, error)
}

// Server holds the dependencies for the API.
type Server struct {
	assembler Assembler
	history   History
	footer    string
	logger    *slog.Logger
}

// NewServer creates a new API Server. history may be nil when no store is configured.
func NewServer(a Assembler, history History, footer string) *Server {
	return &Server{
		assembler: a,
		history:   history,
		footer:    footer,
		logger:    slog.Default(),
	}
}

// Routes returns the configured http.Handler for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth())
	mux.HandleFunc("GET /api/report", s.handleReport())
	mux.HandleFunc("GET /api/reports/latest", s.handleLatest())
	return mux
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleReport assembles a report on every request. ?format=text returns
// the plain-text email body instead of JSON.
func (s *Server) handleReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := s.assembler.Assemble(r.Context())
		if err != nil {
			s.logger.Error("assemble report", "error", err)
			respondError(w, http.StatusBadGateway, "failed to fetch news")
			return
		}
		if r.URL.Query().Get("format") == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(rep.Text(s.footer)))
			return
		}
		respondJSON(w, http.StatusOK, rep)
	}
}

func (s *Server) handleLatest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.history == nil {
			respondError(w, http.StatusNotFound, "report history is disabled")
			return
		}
		rec, err := s.history.Latest(r.Context())
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no reports stored yet")
			return
		}
		if err != nil {
			s.logger.Error("load latest report", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to load report")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"id":           rec.ID,
			"generated_at": rec.Report.GeneratedAt,
			"report":       rec.Report,
		})
	}
}

// --- Helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
