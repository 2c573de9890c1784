package dishq

import (
	"fmt"
	"strings"

	"github.com/plateful/dishq/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrRateLimited        = domain.ErrRateLimited
	ErrModerationRejected = domain.ErrModerationRejected
	ErrUpstream           = domain.ErrUpstream
)

// APIError carries a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dishq: %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 429:
		return ErrRateLimited
	case 400:
		if strings.HasPrefix(e.Message, "Content flagged as inappropriate") {
			return ErrModerationRejected
		}
		return ErrInvalidInput
	case 500:
		return ErrUpstream
	default:
		return nil
	}
}
