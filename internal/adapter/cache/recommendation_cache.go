package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RecommendationCache keeps recently computed recommendation responses in
// Redis for a short TTL. The cache is strictly an optimization: any Redis
// failure degrades to recomputing, never to a failed request.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRecommendationCache builds a cache from a Redis URL. A zero or negative
// TTL disables caching entirely and returns a nil cache, which is safe to
// call.
func NewRecommendationCache(redisURL string, ttlSeconds int, logger *slog.Logger) (*RecommendationCache, error) {
	if ttlSeconds <= 0 {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RecommendationCache{
		client: redis.NewClient(opts),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		logger: logger,
	}, nil
}

func (c *RecommendationCache) key(userID uuid.UUID) string {
	return "curator:recommendations:" + userID.String()
}

// Get unmarshals a cached response into dest. The boolean reports a hit.
func (c *RecommendationCache) Get(ctx context.Context, userID uuid.UUID, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("recommendation cache read failed", "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("recommendation cache entry corrupt", "error", err)
		return false
	}
	return true
}

// Set stores a response under the user's key.
func (c *RecommendationCache) Set(ctx context.Context, userID uuid.UUID, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("recommendation cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.key(userID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("recommendation cache write failed", "error", err)
	}
}

// Invalidate drops a user's cached response, used after activity writes so a
// fresh interaction is reflected immediately.
func (c *RecommendationCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Warn("recommendation cache invalidation failed", "error", err)
	}
}
