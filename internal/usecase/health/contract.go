package health

import "context"

// StorePinger checks counter store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// UpstreamChecker checks moderation/generation capability availability.
type UpstreamChecker interface {
	HealthCheck(ctx context.Context) error
}
