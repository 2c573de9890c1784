package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/domain"
	"github.com/plateful/dishq/internal/domain/query"
	"github.com/plateful/dishq/internal/metrics"
)

// Translator converts free text into a structured recipe query via a
// schema-constrained tool call.
type Translator struct {
	client *openai.Client
	model  string
	tools  []openai.Tool
	logger *zap.Logger
}

// NewTranslator creates a structured-generation translator.
func NewTranslator(cfg *Config) *Translator {
	return &Translator{
		client: newClient(cfg),
		model:  cfg.Model,
		tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolName,
				Description: toolDescription,
				Strict:      true,
				Parameters:  toolParameters(),
			},
		}},
		logger: cfg.Logger,
	}
}

// Translate issues one schema-constrained generation call and decodes the
// tool arguments into a query spec. Anything other than a completed tool
// call propagates as an upstream error carrying the raw finish status; a
// partially filled spec is never returned.
func (t *Translator) Translate(ctx context.Context, text string) (query.Spec, error) {
	if t.client == nil {
		return query.Spec{}, fmt.Errorf("%w: generation API credential is not set", domain.ErrConfiguration)
	}

	start := time.Now()

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Tools: t.tools,
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: toolName},
		},
	})

	duration := time.Since(start)

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("generation", t.model, "error").Inc()
		return query.Spec{}, parseAPIError(err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("generation", t.model, "success").Inc()
	metrics.UpstreamRequestDuration.WithLabelValues("generation", t.model).Observe(duration.Seconds())
	recordTokenUsage(t.model, resp.Usage)

	spec, err := specFromResponse(&resp)
	if err != nil {
		return query.Spec{}, err
	}

	t.logger.Debug("translated query",
		zap.String("model", t.model),
		zap.String("query", spec.Query),
	)
	return spec, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (t *Translator) HealthCheck(ctx context.Context) error {
	if t.client == nil {
		return fmt.Errorf("%w: generation API credential is not set", domain.ErrConfiguration)
	}
	if _, err := t.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// specFromResponse extracts and validates the tool call arguments.
func specFromResponse(resp *openai.ChatCompletionResponse) (query.Spec, error) {
	if len(resp.Choices) == 0 {
		return query.Spec{}, domain.NewUpstreamError("empty", "generation returned no choices")
	}

	choice := resp.Choices[0]
	call, ok := findToolCall(choice.Message.ToolCalls)
	if !ok {
		return query.Spec{}, domain.NewUpstreamError(string(choice.FinishReason), "generation did not produce a tool call")
	}

	var spec query.Spec
	dec := json.NewDecoder(strings.NewReader(call.Function.Arguments))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return query.Spec{}, domain.NewUpstreamError(string(choice.FinishReason), "decode tool arguments: "+err.Error())
	}

	// The schema forbids values outside the closed vocabularies; a violation
	// here is upstream drift, not a caller mistake.
	if err := spec.Validate(); err != nil {
		return query.Spec{}, domain.NewUpstreamError(string(choice.FinishReason), "generated spec invalid: "+err.Error())
	}

	return spec, nil
}

func findToolCall(calls []openai.ToolCall) (openai.ToolCall, bool) {
	for _, c := range calls {
		if c.Function.Name == toolName {
			return c, true
		}
	}
	return openai.ToolCall{}, false
}

func recordTokenUsage(model string, usage openai.Usage) {
	if usage.TotalTokens == 0 {
		return
	}
	metrics.UpstreamTokensTotal.WithLabelValues(model, "prompt").Add(float64(usage.PromptTokens))
	metrics.UpstreamTokensTotal.WithLabelValues(model, "completion").Add(float64(usage.CompletionTokens))
	metrics.UpstreamTokensTotal.WithLabelValues(model, "total").Add(float64(usage.TotalTokens))
}
