// Package ratelimit enforces a per-identity fixed-window request quota.
package ratelimit

import "context"

// Limiter is the authoritative server-side quota contract. Allow performs an
// atomic check-and-increment; Remaining is a pure read that never consumes
// quota. Implementations must be safe under concurrent calls for the same
// identity.
type Limiter interface {
	Allow(ctx context.Context, identity string) (bool, error)
	Remaining(ctx context.Context, identity string) (int, error)
}
