package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.KVStore = (*KVStore)(nil)

// KVStore — ports.KVStore поверх Redis. Ключи получают общий префикс;
// ttl = 0 — без срока жизни.
type KVStore struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewKVStore — конструктор KVStore.
func NewKVStore(rdb redis.Cmdable, prefix string, ttl time.Duration) *KVStore {
	return &KVStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get — redis.Nil означает «ключа нет».
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}
