// Package db defines the counter-store facade backing the durable rate
// limiter. Consumers depend on the narrow interfaces, not implementations.
package db

import (
	"context"
	"time"
)

// Store is the database facade for counter operations.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value counter operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
