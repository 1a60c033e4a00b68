package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the identity in Redis under "<prefix>:email". A zero TTL
// keeps it until Clear.
type RedisSlot struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

func NewRedisSlot(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisSlot {
	if prefix == "" {
		prefix = "storelogin"
	}
	return &RedisSlot{rdb: rdb, key: prefix + ":" + common.SessionIdentityKey, ttl: ttl}
}

func (s *RedisSlot) Set(ctx context.Context, identity string) error {
	if identity == "" {
		return ErrEmptyIdentity
	}
	if err := s.rdb.Set(ctx, s.key, identity, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisSlot) Get(ctx context.Context) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return v, true, nil
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}
