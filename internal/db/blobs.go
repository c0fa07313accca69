package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobs is string-keyed blob persistence over Redis, used for the note
// list and the assistant chat history. A missing key reads as nil with no
// error, so first runs start from empty state.
type RedisBlobs struct {
	rdb *redis.Client
}

// NewRedisBlobs wraps an already-verified Redis client.
func NewRedisBlobs(rdb *redis.Client) *RedisBlobs {
	return &RedisBlobs{rdb: rdb}
}

// Get returns the blob stored under key, or (nil, nil) when the key is absent.
func (b *RedisBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return data, nil
}

// Set stores data under key with no expiry.
func (b *RedisBlobs) Set(ctx context.Context, key string, data []byte) error {
	if err := b.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is a no-op.
func (b *RedisBlobs) Delete(ctx context.Context, key string) error {
	if err := b.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}
