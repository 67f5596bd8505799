package redisad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hotel_desk/internal/adapters/observability"
)

// Store keeps each persisted value as a JSON blob under its key. Unlike a
// cache there is no TTL: these are the durable copies of the three state
// values.
type Store struct{ c *redis.Client }

func New(addr, pass string, db int) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}

func (s *Store) Load(ctx context.Context, key string, dst any) (bool, error) {
	observability.ObserveStore("redis", "load")
	v, err := s.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, v any) error {
	observability.ObserveStore("redis", "save")
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.c.Set(ctx, key, b, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	observability.ObserveStore("redis", "del")
	return s.c.Del(ctx, key).Err()
}
