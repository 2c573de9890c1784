// Package chi exposes the translation pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/domain"
	domtrans "github.com/plateful/dishq/internal/domain/translation"
	healthuc "github.com/plateful/dishq/internal/usecase/health"
	translationuc "github.com/plateful/dishq/internal/usecase/translation"
)

// rateLimitMessage is the fixed client-facing 429 body.
const rateLimitMessage = "Rate limit exceeded. Please try again later."

// unavailableMessage is the client-facing body for operator-fixable failures.
// Deliberately generic: configuration details never reach the client.
const unavailableMessage = "Translation service temporarily unavailable"

// translationUseCase is the orchestrator contract consumed by the server.
type translationUseCase interface {
	Translate(ctx context.Context, rawText, identity string) (translationuc.Result, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server handles the translation HTTP API.
type Server struct {
	translation   translationUseCase
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(translation translationUseCase, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		translation: translation,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		moderationHandler,
		invalidInputHandler,
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, rateLimitMessage),
		sentinelHandler(domain.ErrConfiguration, http.StatusInternalServerError, unavailableMessage),
		upstreamHandler,
	}
	return s
}

// RegisterRoutes mounts all handlers on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/translate", s.TranslateQuery)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// translateRequest is the POST /api/v1/translate body.
type translateRequest struct {
	Input string `json:"input"`
}

// translateResponse is the success body.
type translateResponse struct {
	Response          string `json:"response"`
	OriginalInput     string `json:"originalInput"`
	RemainingRequests int    `json:"remainingRequests"`
}

// errorResponse is the failure body.
type errorResponse struct {
	Error string `json:"error"`
}

// TranslateQuery handles POST /api/v1/translate.
func (s *Server) TranslateQuery(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	identity := clientIdentity(r)

	res, err := s.translation.Translate(r.Context(), req.Input, identity)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Response:          res.Query,
		OriginalInput:     res.OriginalInput,
		RemainingRequests: res.Remaining,
	})
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

// clientIdentity extracts the rate-limiter identity from request metadata:
// first X-Forwarded-For hop, then X-Real-IP, then the shared "unknown"
// bucket for clients with no determinable address.
func clientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return domtrans.UnknownIdentity
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// moderationHandler reports the flagged categories back to the caller.
func moderationHandler(w http.ResponseWriter, err error) bool {
	var rejection *domain.ModerationRejectionError
	if !errors.As(err, &rejection) {
		return false
	}
	writeError(w, http.StatusBadRequest, rejection.Error())
	return true
}

// invalidInputHandler surfaces the validation reason; it is user-correctable.
func invalidInputHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidInput) {
		return false
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return true
}

// upstreamHandler reports the upstream status without internals beyond it.
func upstreamHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrUpstream) {
		return false
	}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		writeError(w, http.StatusInternalServerError, upstream.Error())
		return true
	}
	writeError(w, http.StatusInternalServerError, domain.ErrUpstream.Error())
	return true
}

// sentinelHandler returns an errorHandler matching a single sentinel error.
func sentinelHandler(sentinel error, status int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, message)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
