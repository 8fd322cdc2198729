// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process [Store] used by handler and service tests.
// Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memoryEntry{}, now: time.Now}
}

// Get implements [Store].
func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !entry.expires.IsZero() && !store.now().Before(entry.expires) {
		delete(store.entries, key)
		return nil, ErrMiss
	}
	return entry.value, nil
}

// Set implements [Store].
func (store *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expires = store.now().Add(ttl)
	}
	store.entries[key] = entry
	return nil
}

// DeletePrefix implements [Store].
func (store *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	deleted := 0
	for key := range store.entries {
		if strings.HasPrefix(key, prefix) {
			delete(store.entries, key)
			deleted++
		}
	}
	return deleted, nil
}
