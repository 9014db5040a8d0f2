// Package web serves the search page, the occupation dashboard and a health
// endpoint.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/explorer"
	"onetexplorer/internal/impact"
	"onetexplorer/internal/integrations/onet"
	"onetexplorer/internal/logging"
	"onetexplorer/internal/report"

	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var searchTemplate = template.Must(template.ParseFS(templateFS, "templates/search.html.tmpl"))

const recentRuns = 10

// Explorer is the pipeline the handlers drive.
type Explorer interface {
	Search(ctx context.Context, keyword string) ([]domain.OccupationRef, error)
	Build(ctx context.Context, code string) (domain.Report, error)
	Record(ctx context.Context, rep domain.Report, trigger, reportPath string) (domain.RunRecord, error)
	History(ctx context.Context, code string, limit int) ([]domain.RunRecord, error)
}

type Server struct {
	explorer         Explorer
	apiKeyConfigured bool
	logger           *zap.Logger
}

func NewServer(e Explorer, apiKeyConfigured bool, logger *zap.Logger) *Server {
	return &Server{explorer: e, apiKeyConfigured: apiKeyConfigured, logger: logging.OrNop(logger)}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleSearch)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/report", s.handleReportJSON)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("web server starting", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("web server shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

type searchPage struct {
	Query            string
	Results          []domain.OccupationRef
	Recent           []domain.RunRecord
	Error            string
	APIKeyConfigured bool
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page := searchPage{
		Query:            strings.TrimSpace(r.URL.Query().Get("q")),
		APIKeyConfigured: s.apiKeyConfigured,
	}
	status := http.StatusOK
	if page.Query != "" && s.apiKeyConfigured {
		results, err := s.explorer.Search(r.Context(), page.Query)
		if err != nil {
			status = statusFor(err)
			page.Error = userMessage(err)
			s.logger.Warn("web search failed", zap.String("q", page.Query), zap.Error(err))
		}
		page.Results = results
	}
	recent, err := s.explorer.History(r.Context(), "", recentRuns)
	if err != nil {
		s.logger.Warn("web history failed", zap.Error(err))
	}
	page.Recent = recent

	var buf bytes.Buffer
	if err := searchTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("web render search", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) build(w http.ResponseWriter, r *http.Request) (domain.Report, bool) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if !s.apiKeyConfigured {
		http.Error(w, "O*NET API key is not configured", http.StatusServiceUnavailable)
		return domain.Report{}, false
	}
	rep, err := s.explorer.Build(r.Context(), code)
	if err != nil {
		s.logger.Warn("web build failed", zap.String("code", code), zap.Error(err))
		http.Error(w, userMessage(err), statusFor(err))
		return domain.Report{}, false
	}
	if _, err := s.explorer.Record(r.Context(), rep, "web", ""); err != nil {
		s.logger.Warn("web history failed", zap.String("code", code), zap.Error(err))
	}
	return rep, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.build(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, rep); err != nil {
		s.logger.Error("web render dashboard", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.build(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := report.RenderJSON(w, rep); err != nil {
		s.logger.Error("web render json", zap.Error(err))
	}
}

type healthResponse struct {
	Status           string `json:"status"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", APIKeyConfigured: s.apiKeyConfigured})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, explorer.ErrEmptyCode), errors.Is(err, onet.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, onet.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, explorer.ErrEmptyCode):
		return "An occupation code is required."
	case errors.Is(err, onet.ErrInvalidRequest):
		return "O*NET rejected the request. Check the search term or occupation code."
	case errors.Is(err, onet.ErrNotFound):
		return "Occupation not found."
	case errors.Is(err, onet.ErrUnauthorized):
		return "O*NET rejected the API key."
	case errors.Is(err, impact.ErrInvalidTask):
		return "O*NET returned malformed task data for this occupation."
	default:
		return "O*NET request failed. Try again later."
	}
}
