package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisStore backs the result cache with Redis. Per-key operations are
// serialized by the server, so no client-side coordination is needed.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a new Redis-backed store and verifies the connection.
func NewRedisStore(redisURL string, logger zerolog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		logger: logger.With().Str("component", "cache").Logger(),
	}, nil
}

// Get retrieves a value by key. Any failure is a miss.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return data, true
}

// Set stores a value under the class TTL. Failures are logged and dropped.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, class Class) {
	if err := s.client.Set(ctx, key, value, TTL(class)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate deletes every key containing pattern.
func (s *RedisStore) Invalidate(ctx context.Context, pattern string) {
	keys, err := s.client.Keys(ctx, "*"+pattern+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Str("pattern", pattern).Msg("cache invalidate failed")
	}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
