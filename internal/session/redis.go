package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sportsday/sportsday/internal/dependencies/clock"
)

// RedisConfig holds Redis connection settings for the session store
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	PoolSize     int
	MinIdleConns int
}

// DefaultRedisConfig returns sensible defaults for the Redis session store
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// RedisStore is a Redis-backed implementation of the session store.
// Expiry is enforced with per-key TTLs.
type RedisStore struct {
	client *redis.Client
	clock  clock.Clock
}

// NewRedisStore connects a client and returns a RedisStore
func NewRedisStore(cfg RedisConfig, clk clock.Clock) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, clock: clk}, nil
}

// NewRedisStoreWithClient creates a RedisStore with an existing client
// (for testing)
func NewRedisStoreWithClient(client *redis.Client, clk clock.Clock) *RedisStore {
	return &RedisStore{client: client, clock: clk}
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements the interface
var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Create(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ttl := rec.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, recordKey(rec.Token), data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Record, error) {
	data, err := s.client.Get(ctx, recordKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, recordKey(token)).Err()
}

// Key prefix for all session data
const keyPrefix = "sportsday"

// recordKey returns the Redis key for an auth session record
func recordKey(token string) string {
	return fmt.Sprintf("%s:authsession:%s", keyPrefix, token)
}
