package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/domain"
	"github.com/plateful/dishq/internal/domain/moderation"
	"github.com/plateful/dishq/internal/metrics"
)

// Moderator classifies text via the OpenAI moderation API.
type Moderator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewModerator creates a moderation provider.
func NewModerator(cfg *Config) *Moderator {
	return &Moderator{
		client: newClient(cfg),
		model:  cfg.ModerationModel,
		logger: cfg.Logger,
	}
}

// Moderate classifies the text into the fixed category set. An unreachable or
// misconfigured capability is a configuration/upstream failure, never a
// content rejection.
func (m *Moderator) Moderate(ctx context.Context, text string) (moderation.Verdict, error) {
	if m.client == nil {
		return moderation.Verdict{}, fmt.Errorf("%w: moderation API credential is not set", domain.ErrConfiguration)
	}

	start := time.Now()

	resp, err := m.client.Moderations(ctx, openai.ModerationRequest{
		Input: text,
		Model: m.model,
	})

	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("moderation", m.model, "error").Inc()
		return moderation.Verdict{}, parseAPIError(err)
	}

	if len(resp.Results) == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues("moderation", m.model, "error").Inc()
		return moderation.Verdict{}, domain.NewUpstreamError("empty", "moderation returned no results")
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("moderation", m.model, "success").Inc()
	metrics.UpstreamRequestDuration.WithLabelValues("moderation", m.model).Observe(duration.Seconds())

	return verdictFromResult(resp.Results[0]), nil
}

// verdictFromResult maps the API's category struct onto the enumerated
// domain category set.
func verdictFromResult(r openai.Result) moderation.Verdict {
	c := r.Categories
	return moderation.Verdict{
		Flagged: r.Flagged,
		Flags: []moderation.Flag{
			{Category: moderation.CategoryHate, Flagged: c.Hate},
			{Category: moderation.CategoryHateThreatening, Flagged: c.HateThreatening},
			{Category: moderation.CategoryHarassment, Flagged: c.Harassment},
			{Category: moderation.CategoryHarassmentThreatening, Flagged: c.HarassmentThreatening},
			{Category: moderation.CategorySelfHarm, Flagged: c.SelfHarm},
			{Category: moderation.CategorySelfHarmIntent, Flagged: c.SelfHarmIntent},
			{Category: moderation.CategorySelfHarmInstructions, Flagged: c.SelfHarmInstructions},
			{Category: moderation.CategorySexual, Flagged: c.Sexual},
			{Category: moderation.CategorySexualMinors, Flagged: c.SexualMinors},
			{Category: moderation.CategoryViolence, Flagged: c.Violence},
			{Category: moderation.CategoryViolenceGraphic, Flagged: c.ViolenceGraphic},
		},
	}
}
