package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/plateful/dishq/internal/db"
)

// KeyPrefix namespaces limiter keys in the shared counter store.
const KeyPrefix = "dishq:ratelimit:"

// Store is a fixed-window limiter backed by a shared counter store
// (INCRBY + EXPIRE NX). Window keys embed the window start, so concurrent
// processes sharing the store count against the same logical quota and stale
// windows expire on their own.
type Store struct {
	store  db.KVStore
	limit  int64
	period time.Duration
	logger *zap.Logger
	now    func() time.Time
}

var _ Limiter = (*Store)(nil)

// NewStore creates a store-backed limiter allowing limit requests per period.
func NewStore(s db.KVStore, limit int, period time.Duration, logger *zap.Logger) *Store {
	return &Store{
		store:  s,
		limit:  int64(limit),
		period: period,
		logger: logger,
		now:    time.Now,
	}
}

// Allow atomically checks and consumes one unit of the identity's quota.
// The increment itself is the check: the store's INCRBY is atomic, so two
// concurrent calls can never both observe the last free slot.
func (s *Store) Allow(ctx context.Context, identity string) (bool, error) {
	key := s.key(identity)

	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return false, fmt.Errorf("ratelimit INCRBY %s: %w", key, err)
	}

	// TTL only if the key has no expiry yet (NX — not reset on repeat).
	// One extra period of grace keeps Remaining readable until rollover.
	if err := s.store.Expire(ctx, key, 2*s.period, true); err != nil {
		s.logger.Warn("Failed to set rate limit TTL", zap.String("key", key), zap.Error(err))
	}

	return n <= s.limit, nil
}

// Remaining reports the identity's unused quota without consuming any.
func (s *Store) Remaining(ctx context.Context, identity string) (int, error) {
	key := s.key(identity)

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return int(s.limit), nil
		}
		return 0, fmt.Errorf("ratelimit GET %s: %w", key, err)
	}

	used, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ratelimit GET %s parse: %w", key, err)
	}

	remaining := s.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining), nil
}

// key builds the window-scoped counter key for an identity.
func (s *Store) key(identity string) string {
	windowStart := s.now().UTC().Truncate(s.period).Unix()
	return fmt.Sprintf("%s%s:%d", KeyPrefix, identity, windowStart)
}
