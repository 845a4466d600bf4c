// Package redis caches verified scores in front of the durable score store.
// The cache is strictly best-effort: any Redis failure degrades to the inner
// store and never surfaces to callers.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asingla/credscope/internal/core/domain"
	"github.com/asingla/credscope/internal/core/ports"
)

type ScoreCache struct {
	client    *redis.Client
	inner     ports.ScoreStore
	ttl       time.Duration
	logger    *slog.Logger
	recordHit func()
}

// NewScoreCache wraps inner with a read-through Redis layer. recordHit is
// invoked on every cache hit; nil disables the hook.
func NewScoreCache(client *redis.Client, inner ports.ScoreStore, ttl time.Duration, logger *slog.Logger, recordHit func()) *ScoreCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ScoreCache{
		client:    client,
		inner:     inner,
		ttl:       ttl,
		logger:    logger,
		recordHit: recordHit,
	}
}

func (c *ScoreCache) Lookup(ctx context.Context, userID, docHash string) (*domain.VerifiedScore, error) {
	key := cacheKey(userID, docHash)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var score domain.VerifiedScore
		if unmarshalErr := json.Unmarshal(raw, &score); unmarshalErr == nil {
			if c.recordHit != nil {
				c.recordHit()
			}
			return &score, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		c.client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("score cache read failed", "key", key, "error", err)
	}

	score, err := c.inner.Lookup(ctx, userID, docHash)
	if err != nil {
		return nil, err
	}
	c.backfill(ctx, key, score)
	return score, nil
}

func (c *ScoreCache) Store(ctx context.Context, score *domain.VerifiedScore) error {
	if err := c.inner.Store(ctx, score); err != nil {
		return err
	}
	c.backfill(ctx, cacheKey(score.UserID, score.DocHash), score)
	return nil
}

func (c *ScoreCache) backfill(ctx context.Context, key string, score *domain.VerifiedScore) {
	payload, err := json.Marshal(score)
	if err != nil {
		c.logger.Warn("score cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("score cache write failed", "key", key, "error", err)
	}
}

func cacheKey(userID, docHash string) string {
	return fmt.Sprintf("credscope:score:%s:%s", userID, docHash)
}
