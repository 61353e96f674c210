package global

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds cross-request staleness of cached toggle reads.
const DefaultCacheTTL = 60 * time.Second

// CachedStore is a Redis read-through decorator over another Store.
//
// Reads consult Redis first and fall back to the wrapped store, populating
// the cache with a short TTL. Writes go through to the wrapped store and
// invalidate the cached key. Redis failures degrade to uncached reads; only
// the wrapped store's errors propagate.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps next with a Redis cache. A zero ttl uses DefaultCacheTTL.
func NewCached(next Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{next: next, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) SwitchActive(ctx context.Context, key string) (bool, error) {
	return s.active(ctx, "switch", key, s.next.SwitchActive)
}

func (s *CachedStore) FlagActive(ctx context.Context, key string) (bool, error) {
	return s.active(ctx, "flag", key, s.next.FlagActive)
}

func (s *CachedStore) active(ctx context.Context, kind, key string, read func(context.Context, string) (bool, error)) (bool, error) {
	cacheKey := s.cacheKey(kind, key)

	cached, err := s.client.Get(ctx, cacheKey).Result()
	if err == nil {
		return cached == "1", nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.WarnContext(ctx, "toggle cache read failed, falling back to store",
			"key", cacheKey,
			"error", err,
		)
	}

	active, err := read(ctx, key)
	if err != nil {
		return false, err
	}

	if err := s.client.Set(ctx, cacheKey, boolString(active), s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "toggle cache write failed",
			"key", cacheKey,
			"error", err,
		)
	}
	return active, nil
}

func (s *CachedStore) SetSwitch(ctx context.Context, key string, active bool) error {
	if err := s.next.SetSwitch(ctx, key, active); err != nil {
		return err
	}
	s.invalidate(ctx, "switch", key)
	return nil
}

func (s *CachedStore) SetFlag(ctx context.Context, key string, active bool) error {
	if err := s.next.SetFlag(ctx, key, active); err != nil {
		return err
	}
	s.invalidate(ctx, "flag", key)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, kind, key string) {
	cacheKey := s.cacheKey(kind, key)
	if err := s.client.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.WarnContext(ctx, "toggle cache invalidation failed",
			"key", cacheKey,
			"error", err,
		)
	}
}

func (s *CachedStore) cacheKey(kind, key string) string {
	return fmt.Sprintf("waffle:%s:%s", kind, key)
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
