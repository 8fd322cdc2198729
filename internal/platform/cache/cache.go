// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache stores rebuilt page data for its revalidation interval.

Pages read through [Remember]: a hit is served from the store, a miss runs the
loader (database query, Sheets range, calendar fan-out) and stores the result.
The cache is an optimisation. When the store is unreachable the loader runs
directly, and a loader failure is never cached so the next request retries.

Keys are namespaced by prefix (see constants.CachePrefix*) so the
revalidation webhook can purge one family with [Store.DeletePrefix].
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/mangacal/internal/platform/ctxutil"
)

// ErrMiss is returned by [Store.Get] when the key does not exist.
var ErrMiss = errors.New("cache: miss")

// Store is the minimal key/value contract the page loaders need.
type Store interface {
	// Get returns the raw value or [ErrMiss].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value with a time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix removes every key starting with prefix and reports how many went.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// Key joins parts with ':' after the namespace prefix.
//
// # Example
//
//	cache.Key("calendar:", "2026-10", "kim,tre") // "calendar:2026-10:kim,tre"
func Key(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ":")
}

/*
Remember returns the cached value for key, or builds it with load.

Parameters:
  - ctx: request context (carries the request logger)
  - store: backing [Store]; nil disables caching
  - key: namespaced key, see [Key]
  - ttl: revalidation interval
  - load: builds the value from the source of truth

Returns:
  - T: cached or freshly loaded value
  - error: the loader's error, unchanged
*/
func Remember[T any](ctx context.Context, store Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if store == nil {
		return load(ctx)
	}

	logger := ctxutil.GetLogger(ctx)

	// 1. Serve a hit
	raw, err := store.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		decodeErr := json.Unmarshal(raw, &value)
		if decodeErr == nil {
			return value, nil
		}
		logger.WarnContext(ctx, "cache_decode_failed", slog.String("key", key), slog.Any("error", decodeErr))
	case !errors.Is(err, ErrMiss):
		logger.WarnContext(ctx, "cache_read_failed", slog.String("key", key), slog.Any("error", err))
	}

	// 2. Rebuild from the source
	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	// 3. Store for the next reader
	encoded, err := json.Marshal(value)
	if err != nil {
		logger.WarnContext(ctx, "cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return value, nil
	}
	if err := store.Set(ctx, key, encoded, ttl); err != nil {
		logger.WarnContext(ctx, "cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
