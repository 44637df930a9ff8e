// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package snapshot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCollectionRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	collection := NewCollection(store, "books", []record{}, testLogger())

	want := []record{
		{ID: "1", Title: "The Adventures of Tom Sawyer"},
		{ID: "gutenberg-76", Title: "Adventures of Huckleberry Finn"},
	}

	require.NoError(t, collection.Save(context.Background(), want))

	got, err := collection.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollectionLoadSeedsDefault(t *testing.T) {
	store := NewMemoryStore()
	seed := []record{{ID: "1", Title: "Seeded"}}
	collection := NewCollection(store, "books", seed, testLogger())

	got, err := collection.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	// The default must have been written as the initial snapshot.
	blob, err := store.Load(context.Background(), "books")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","title":"Seeded"}]`, string(blob))
}

func TestCollectionLoadCorruptFallsBack(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("books", []byte(`{"not":"an array"`))

	seed := []record{{ID: "1", Title: "Default"}}
	collection := NewCollection(store, "books", seed, testLogger())

	got, err := collection.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, got)
}

func TestCollectionUpdate(t *testing.T) {
	store := NewMemoryStore()
	collection := NewCollection(store, "books", []record{}, testLogger())

	updated, err := collection.Update(context.Background(), func(items []record) ([]record, error) {
		return append(items, record{ID: "2", Title: "Appended"}), nil
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)

	got, err := collection.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestCollectionUpdateAbortsWithoutWrite(t *testing.T) {
	store := NewMemoryStore()
	collection := NewCollection(store, "books", []record{}, testLogger())
	require.NoError(t, collection.Save(context.Background(), []record{{ID: "1"}}))

	_, err := collection.Update(context.Background(), func(items []record) ([]record, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	got, err := collection.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
