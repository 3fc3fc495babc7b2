// Package chi exposes the search API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/casafind/casafind/internal/domain"
	"github.com/casafind/casafind/internal/domain/property"
	"github.com/casafind/casafind/internal/metrics"
	healthuc "github.com/casafind/casafind/internal/usecase/health"
	"github.com/casafind/casafind/internal/usecase/reconcile"
	"github.com/casafind/casafind/internal/usecase/suggest"
)

// Error codes returned in the error response body.
const (
	codeBadRequest        = "bad_request"
	codeSearchUnavailable = "search_unavailable"
	codeInternalError     = "internal_error"
)

// Server implements the HTTP API on top of the search usecases.
type Server struct {
	recon   *reconcile.Service
	sources reconcile.Sources
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server. sources is the same source set the
// reconciler uses; the suggestion handler pulls its corpus from it.
func NewServer(
	recon *reconcile.Service,
	sources reconcile.Sources,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		recon:   recon,
		sources: sources,
		health:  health,
		logger:  logger,
	}
}

// Router builds the chi router for the API surface. Request-scoped
// middleware (recovery, request IDs, canonical logging) is layered on by
// the caller.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chirouter.NewRouter()
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chirouter.Router) {
		r.Get("/search", s.Search)
		r.Get("/suggest", s.Suggest)
	})
	return r
}

// searchResponse is the wire shape of a reconciled result set.
type searchResponse struct {
	Items []property.Property `json:"items"`
	Total int                 `json:"total"`
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	f, err := filtersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	mode := string(reconcile.ModeFor(f))
	start := time.Now()
	items, err := s.recon.Reconcile(r.Context(), f)
	metrics.ReconcileDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ReconcileTotal.WithLabelValues(mode, "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.ReconcileTotal.WithLabelValues(mode, "ok").Inc()

	writeJSON(w, http.StatusOK, searchResponse{Items: items, Total: len(items)})
}

// suggestResponse is the wire shape of a suggestion list.
type suggestResponse struct {
	Items []string `json:"items"`
}

// Suggest handles GET /api/v1/suggest. Suggestions are advisory: a corpus
// fetch failure yields an empty list, never an error status.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	corpus, err := s.sources.List(r.Context(), s.recon.ListLimit())
	if err != nil {
		s.logger.Warn("suggestion corpus fetch failed", zap.Error(err))
		metrics.SuggestTotal.WithLabelValues("degraded").Inc()
		writeJSON(w, http.StatusOK, suggestResponse{Items: []string{}})
		return
	}

	items := suggest.Suggest(q, corpus)
	if items == nil {
		items = []string{}
	}
	metrics.SuggestTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, suggestResponse{Items: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSearchUnavailable) {
		s.logger.Warn("search unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeSearchUnavailable, "search is temporarily unavailable")
		return
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
