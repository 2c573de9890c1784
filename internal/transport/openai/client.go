// Package openai adapts the OpenAI moderation and tool-calling chat APIs to
// the domain contracts of the translation pipeline.
package openai

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Config holds the moderation/generation capability settings.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	ModerationModel string
	Timeout         time.Duration
	Logger          *zap.Logger
}

const defaultTimeout = 30 * time.Second

// newClient builds a configured API client. Returns nil when no credential is
// set; callers surface that as a configuration error per request.
func newClient(cfg *Config) *openai.Client {
	if cfg.APIKey == "" {
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return openai.NewClientWithConfig(clientCfg)
}
