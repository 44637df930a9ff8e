// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/lethanhduc/bookwise/internal/platform/apperr"
)

// Collection is a typed view over one snapshot key.
//
// # Semantics
//
// Load is fail-soft: a missing snapshot seeds the default value as the
// initial snapshot and returns it, and a corrupt (unparseable) snapshot falls
// back to the default instead of failing the request. Only connectivity
// failures surface as errors, mapped to STORAGE_ERROR. Save serializes the
// whole slice and overwrites the stored blob.
type Collection[T any] struct {
	store        Store
	key          string
	defaultValue []T
	logger       *slog.Logger
}

/*
NewCollection binds a typed collection to a snapshot key.

Parameters:
  - store: Store
  - key: string (Snapshot key, e.g. constants.CollectionBooks)
  - defaultValue: []T (Returned and seeded when no snapshot exists)
  - logger: *slog.Logger

Returns:
  - *Collection[T]
*/
func NewCollection[T any](store Store, key string, defaultValue []T, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{
		store:        store,
		key:          key,
		defaultValue: defaultValue,
		logger:       logger,
	}
}

/*
Load returns the current contents of the collection.

Description: Missing snapshots are seeded with the default value so the
first read establishes the initial state. Corrupt payloads are logged and
replaced by the default value rather than propagated.

Parameters:
  - context: context.Context

Returns:
  - []T: Collection contents
  - error: STORAGE_ERROR on connectivity failure only
*/
func (collection *Collection[T]) Load(context context.Context) ([]T, error) {

	blob, err := collection.store.Load(context, collection.key)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			// First use. Seed the default so subsequent reads are stable.
			if saveErr := collection.Save(context, collection.defaultValue); saveErr != nil {
				return nil, saveErr
			}
			return collection.clone(collection.defaultValue), nil
		}
		return nil, apperr.Storage(err)
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		collection.logger.Warn("snapshot_payload_corrupt",
			slog.String("collection", collection.key),
			slog.Any("error", err),
		)
		return collection.clone(collection.defaultValue), nil
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

/*
Save replaces the collection contents with items.

Parameters:
  - context: context.Context
  - items: []T

Returns:
  - error: STORAGE_ERROR on serialization or connectivity failure
*/
func (collection *Collection[T]) Save(context context.Context, items []T) error {

	if items == nil {
		items = []T{}
	}

	blob, err := json.Marshal(items)
	if err != nil {
		return apperr.Storage(err)
	}

	if err := collection.store.Save(context, collection.key, blob); err != nil {
		return apperr.Storage(err)
	}

	return nil
}

/*
Update applies mutate to the current contents and persists the result.

Description: Read-modify-write convenience for handlers that change a few
records. The write is still a full-snapshot rewrite with last-write-wins
semantics.

Parameters:
  - context: context.Context
  - mutate: func([]T) ([]T, error) (Returns the new contents, or an error to
    abort without writing)

Returns:
  - []T: The persisted contents
  - error: The mutate error, or STORAGE_ERROR
*/
func (collection *Collection[T]) Update(context context.Context, mutate func([]T) ([]T, error)) ([]T, error) {

	items, err := collection.Load(context)
	if err != nil {
		return nil, err
	}

	updated, err := mutate(items)
	if err != nil {
		return nil, err
	}

	if err := collection.Save(context, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// clone shields the shared default slice from caller mutation.
func (collection *Collection[T]) clone(items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
