package dishq

import (
	"net/http"
	"time"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	apiKey     string
	httpClient *http.Client
	limiter    *AdvisoryLimiter
}

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = client
	})
}

// WithAdvisoryLimit enables the client-side advisory limiter. Mirror the
// server's configured quota to avoid round-trips that would be rejected.
func WithAdvisoryLimit(limit int, period time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.limiter = NewAdvisoryLimiter(limit, period)
	})
}
