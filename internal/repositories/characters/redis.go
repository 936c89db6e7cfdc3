package characters

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
	"github.com/redis/go-redis/v9"
)

const indexKey = "combatants"

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{
		client: cfg.Client,
	}
}

// key generates the Redis key for a record
func (r *redisRepo) key(name string) string {
	return fmt.Sprintf("combatant:%s", character.Key(name))
}

// Get retrieves a record by name
func (r *redisRepo) Get(ctx context.Context, name string) (*character.Character, error) {
	if character.Key(name) == "" {
		return nil, dnderr.InvalidArgument("character name is required")
	}

	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err == redis.Nil {
		return nil, dnderr.NotFoundf("character '%s' not found", name).
			WithMeta("name", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return decodeRecord(data)
}

// Save creates or replaces a record and indexes its key
func (r *redisRepo) Save(ctx context.Context, char *character.Character) error {
	data, err := encodeRecord(char)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(char.Name), string(data), 0)
	pipe.SAdd(ctx, indexKey, char.Key())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}

	return nil
}

// Delete removes a record and its index entry
func (r *redisRepo) Delete(ctx context.Context, name string) error {
	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, r.key(name))
	pipe.SRem(ctx, indexKey, character.Key(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	if del.Val() == 0 {
		return dnderr.NotFoundf("character '%s' not found", name).
			WithMeta("name", name)
	}
	return nil
}

// List returns every indexed record sorted by key.
// Index entries whose record has vanished are skipped.
func (r *redisRepo) List(ctx context.Context) ([]*character.Character, error) {
	keys, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character keys: %w", err)
	}
	sort.Strings(keys)

	result := make([]*character.Character, 0, len(keys))
	for _, key := range keys {
		char, err := r.Get(ctx, key)
		if dnderr.IsNotFound(err) {
			log.Printf("[REDIS] Skipping stale index entry %q", key)
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, char)
	}

	return result, nil
}
