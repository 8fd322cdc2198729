// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN while purging.
const scanBatch = 200

// RedisStore implements [Store] on top of go-redis.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Get implements [Store].
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := store.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return raw, nil
}

// Set implements [Store].
func (store *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := store.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// DeletePrefix implements [Store] with SCAN so a purge never blocks Redis like KEYS would.
func (store *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := store.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("cache: scan %s: %w", prefix, err)
		}
		if len(keys) > 0 {
			removed, err := store.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("cache: delete %s: %w", prefix, err)
			}
			deleted += int(removed)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}
