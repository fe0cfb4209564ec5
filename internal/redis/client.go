package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"kirana_stock/internal/snapshot"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Slot binds a single key as a snapshot slot. No TTL is set; the snapshot
// lives until overwritten.
func (c *Client) Slot(key string) *KeySlot {
	return &KeySlot{rdb: c.rdb, key: key}
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

type KeySlot struct {
	rdb *redis.Client
	key string
}

func (s *KeySlot) Load(ctx context.Context) ([]byte, error) {
	val, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, snapshot.ErrEmpty
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return val, nil
}

func (s *KeySlot) Save(ctx context.Context, data []byte) error {
	return s.rdb.Set(ctx, s.key, data, 0).Err()
}
