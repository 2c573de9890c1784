// Package translation orchestrates the validate → rate-limit → moderate →
// translate pipeline.
package translation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/domain"
	domtrans "github.com/plateful/dishq/internal/domain/translation"
	"github.com/plateful/dishq/internal/metrics"
	"github.com/plateful/dishq/internal/usecase/ratelimit"
)

// Result is a successful translation outcome.
type Result struct {
	// Query is the compiled query string, starting with '?'.
	Query string
	// OriginalInput echoes the caller's text.
	OriginalInput string
	// Remaining is the identity's post-request quota, read after the
	// limiter increment.
	Remaining int
}

// Service sequences the translation pipeline. Stages run strictly in order,
// short-circuit on the first failure, and the failing stage's typed error is
// returned untouched.
type Service struct {
	limiter    ratelimit.Limiter
	moderator  Moderator
	translator Translator
	maxInput   int
	logger     *zap.Logger
}

// New creates the pipeline service. maxInput <= 0 uses the default cap.
func New(
	limiter ratelimit.Limiter,
	moderator Moderator,
	translator Translator,
	maxInput int,
	logger *zap.Logger,
) *Service {
	return &Service{
		limiter:    limiter,
		moderator:  moderator,
		translator: translator,
		maxInput:   maxInput,
		logger:     logger,
	}
}

// Translate runs the full pipeline for one request. Each external capability
// is called at most once; no stage is retried.
func (s *Service) Translate(ctx context.Context, rawText, identity string) (Result, error) {
	res, err := s.translate(ctx, rawText, identity)
	metrics.TranslationRequestsTotal.WithLabelValues(outcome(err)).Inc()
	return res, err
}

func (s *Service) translate(ctx context.Context, rawText, identity string) (Result, error) {
	req, err := domtrans.New(rawText, identity, s.maxInput)
	if err != nil {
		return Result{}, err
	}

	allowed, err := s.limiter.Allow(ctx, req.Identity())
	if err != nil {
		return Result{}, fmt.Errorf("check rate limit: %w", err)
	}
	if !allowed {
		metrics.RateLimitRejectionsTotal.Inc()
		return Result{}, domain.ErrRateLimited
	}

	verdict, err := s.moderator.Moderate(ctx, req.RawText())
	if err != nil {
		return Result{}, err
	}
	if verdict.Flagged {
		return Result{}, domain.NewModerationRejection(verdict.FlaggedNames())
	}

	spec, err := s.translator.Translate(ctx, req.RawText())
	if err != nil {
		return Result{}, err
	}

	remaining, err := s.limiter.Remaining(ctx, req.Identity())
	if err != nil {
		// The translation already succeeded; degrade the telemetry only.
		s.logger.Warn("failed to read remaining quota",
			zap.String("identity", req.Identity()), zap.Error(err))
		remaining = 0
	}

	return Result{
		Query:         spec.Compile(),
		OriginalInput: req.RawText(),
		Remaining:     remaining,
	}, nil
}

// outcome maps a pipeline error onto a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrModerationRejected):
		return "moderation_rejected"
	case errors.Is(err, domain.ErrConfiguration):
		return "configuration"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream"
	default:
		return "internal"
	}
}
