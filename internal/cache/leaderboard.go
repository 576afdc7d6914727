package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"daanbridge-backend/internal/domain"
)

// LeaderboardCache stores the per-category aggregate lists in Redis so the
// leaderboard endpoints do not hit Postgres on every request. Entries
// expire after the configured TTL; a stale-but-present list is acceptable
// because the nightly job rewrites it.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(addr, password string, db int, ttl time.Duration) *LeaderboardCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &LeaderboardCache{client: rdb, ttl: ttl}
}

// Ping verifies the Redis connection at startup.
func (c *LeaderboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached entry list for a category. The second return is
// false on a miss or on any decode problem; callers fall through to the
// database in both cases.
func (c *LeaderboardCache) Get(ctx context.Context, category string) ([]domain.LeaderboardEntry, bool) {
	data, err := c.client.Get(ctx, cacheKey(category)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Set overwrites the cached entry list for a category.
func (c *LeaderboardCache) Set(ctx context.Context, category string, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard entries: %w", err)
	}
	return c.client.Set(ctx, cacheKey(category), data, c.ttl).Err()
}

// Close releases the underlying Redis connection.
func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

func cacheKey(category string) string {
	return "leaderboard:" + category
}
