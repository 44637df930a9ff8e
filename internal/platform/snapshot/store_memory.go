// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package snapshot

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] with an in-process map.
//
// # Usage
//
// It backs service-level tests so they can exercise real load/save semantics
// without a database. It is also safe for concurrent use, unlike the browser
// storage it stands in for.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore constructs an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load returns the blob stored under key, or [ErrNoSnapshot].
func (store *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	blob, found := store.blobs[key]
	if !found {
		return nil, ErrNoSnapshot
	}

	// Copy so callers can't mutate the stored blob.
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Save overwrites the blob stored under key.
func (store *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	store.blobs[key] = stored
	return nil
}

// Seed places a raw blob under key without going through Save.
// Test helper for simulating pre-existing (possibly malformed) snapshots.
func (store *MemoryStore) Seed(key string, blob []byte) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.blobs[key] = blob
}
