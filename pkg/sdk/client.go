package dishq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// TranslateResult is a successful translation response.
type TranslateResult struct {
	// Response is the compiled query string, starting with '?'.
	Response string `json:"response"`
	// OriginalInput echoes the submitted text.
	OriginalInput string `json:"originalInput"`
	// RemainingRequests is the server-reported remaining quota.
	RemainingRequests int `json:"remainingRequests"`
}

// Client is the dishq SDK entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *AdvisoryLimiter
}

// New creates a client for a dishq service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.apiKey,
		httpClient: httpClient,
		limiter:    cfg.limiter,
	}
}

// Translate submits free text and returns the compiled query string.
// With an advisory limiter configured, an exhausted local window fails fast
// with ErrRateLimited without a round-trip.
func (c *Client) Translate(ctx context.Context, input string) (TranslateResult, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return TranslateResult{}, fmt.Errorf("advisory limit reached: %w", ErrRateLimited)
	}

	body, err := json.Marshal(map[string]string{"input": input})
	if err != nil {
		return TranslateResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/v1/translate", bytes.NewReader(body),
	)
	if err != nil {
		return TranslateResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TranslateResult{}, fmt.Errorf("translate request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return TranslateResult{}, apiError(resp)
	}

	var result TranslateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return TranslateResult{}, fmt.Errorf("decode response: %w", err)
	}

	if c.limiter != nil {
		c.limiter.Observe(result.RemainingRequests)
	}

	return result, nil
}

// apiError decodes an {error} body into an APIError.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}
