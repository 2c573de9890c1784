package openai

import (
	"errors"
	"fmt"
	"strconv"

	openai "github.com/sashabaranov/go-openai"

	"github.com/plateful/dishq/internal/domain"
)

// parseAPIError converts an API client error into a domain upstream error.
// Status carries the upstream HTTP code; the message never includes request
// headers or credentials.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return domain.NewUpstreamError(strconv.Itoa(reqErr.HTTPStatusCode), string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewUpstreamError(strconv.Itoa(apiErr.HTTPStatusCode), apiErr.Message)
	}

	return fmt.Errorf("request failed: %w", domain.ErrUpstream)
}
