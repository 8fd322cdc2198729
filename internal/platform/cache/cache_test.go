// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/platform/cache"
)

type month struct {
	Title string   `json:"title"`
	Days  []string `json:"days"`
}

/*
TestRemember_HitAndMiss verifies that the loader runs once per key.
*/
func TestRemember_HitAndMiss(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	calls := 0
	load := func(context.Context) (month, error) {
		calls++
		return month{Title: "Tháng 10/2026", Days: []string{"2026-10-03"}}, nil
	}

	first, err := cache.Remember(ctx, store, "calendar:2026-10", time.Hour, load)
	require.NoError(t, err)
	second, err := cache.Remember(ctx, store, "calendar:2026-10", time.Hour, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

/*
TestRemember_LoadError verifies that failures are returned and never stored.
*/
func TestRemember_LoadError(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	boom := errors.New("sheets down")

	_, err := cache.Remember(ctx, store, "sheet:info", time.Hour, func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Get(ctx, "sheet:info")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) DeletePrefix(context.Context, string) (int, error) {
	return 0, errors.New("connection refused")
}

/*
TestRemember_StoreDown verifies that an unreachable store falls back to the loader.
*/
func TestRemember_StoreDown(t *testing.T) {
	value, err := cache.Remember(context.Background(), brokenStore{}, "series:all", time.Hour, func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, value)
}

/*
TestRemember_NilStore verifies that caching can be disabled.
*/
func TestRemember_NilStore(t *testing.T) {
	value, err := cache.Remember(context.Background(), nil, "k", time.Hour, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

/*
TestMemoryStore_DeletePrefix verifies namespaced purges.
*/
func TestMemoryStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(ctx, cache.Key("calendar:", "2026-10", "all"), []byte("1"), time.Hour))
	require.NoError(t, store.Set(ctx, cache.Key("calendar:", "2026-11", "kim"), []byte("2"), time.Hour))
	require.NoError(t, store.Set(ctx, cache.Key("series:", "list"), []byte("3"), time.Hour))

	deleted, err := store.DeletePrefix(ctx, "calendar:")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	_, err = store.Get(ctx, "series:list")
	assert.NoError(t, err)
}

/*
TestMemoryStore_Expiry verifies that zero TTL keeps entries and a negative one does not.
*/
func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "forever", []byte("x"), 0))
	require.NoError(t, store.Set(ctx, "gone", []byte("x"), time.Nanosecond))
	time.Sleep(time.Millisecond)

	_, err := store.Get(ctx, "forever")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "gone")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

/*
TestKey verifies key composition.
*/
func TestKey(t *testing.T) {
	assert.Equal(t, "calendar:2026-10:kim,tre", cache.Key("calendar:", "2026-10", "kim,tre"))
	assert.Equal(t, "series:", cache.Key("series:"))
}
