package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore shares the answer cache across instances. Every Redis failure
// degrades to a miss; the composer never sees cache errors.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedis(addr string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

// Ping verifies connectivity so startup can fall back to the in-memory
// cache when Redis is unreachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, query string) (string, bool) {
	val, err := s.client.Get(ctx, Key(query)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		s.logger.Warn("Answer cache read failed", zap.Error(err))
		return "", false
	}
	return val, true
}

func (s *RedisStore) Set(ctx context.Context, query, response string) {
	if err := s.client.Set(ctx, Key(query), response, s.ttl).Err(); err != nil {
		s.logger.Warn("Answer cache write failed", zap.Error(err))
	}
}
