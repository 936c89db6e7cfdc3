package encounters

import (
	"context"
	"fmt"
	"time"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/redis/go-redis/v9"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration // How long an idle encounter is kept (default: 7 days)
}

// NewRedisRepository creates a new Redis-backed encounter repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &redisRepo{
		client: cfg.Client,
		ttl:    ttl,
	}
}

// key generates the Redis key for a session's tracker
func (r *redisRepo) key(sessionID string) string {
	return fmt.Sprintf("encounter:%s", sessionID)
}

// Get retrieves the tracker for a session
func (r *redisRepo) Get(ctx context.Context, sessionID string) (*combat.Tracker, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, dnderr.NotFoundf("no encounter for session %s", sessionID).
			WithMeta("session_id", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get encounter: %w", err)
	}

	return decodeTracker(data)
}

// Save creates or replaces the tracker, refreshing its TTL
func (r *redisRepo) Save(ctx context.Context, tracker *combat.Tracker) error {
	data, err := encodeTracker(tracker)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(tracker.SessionID), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save encounter: %w", err)
	}
	return nil
}

// Delete removes the tracker for a session
func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	n, err := r.client.Del(ctx, r.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete encounter: %w", err)
	}
	if n == 0 {
		return dnderr.NotFoundf("no encounter for session %s", sessionID).
			WithMeta("session_id", sessionID)
	}
	return nil
}
