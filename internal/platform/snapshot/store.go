// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package snapshot implements the entity store: named collections persisted as
whole serialized snapshots.

Each collection (books, blog posts, accounts, comments, likes) is stored under
a single string key as one JSON blob. Every save is a full-collection rewrite
with last-write-wins semantics. There are no partial updates and no optimistic
concurrency: two concurrent writers race and the later write silently wins,
which is acceptable for the single-curator context this application serves.

Architecture:

  - Store: Byte-level contract (Load/Save one blob per key).
  - Collection: Generic typed wrapper with default seeding and fail-soft
    deserialization.
  - Implementations: PostgreSQL (one JSONB row per collection) for runtime,
    in-memory for tests.
*/
package snapshot

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by [Store.Load] when no snapshot exists for a key.
//
// Callers (normally [Collection]) react by seeding the default value; this is
// the expected first-run condition, not a failure.
var ErrNoSnapshot = errors.New("snapshot: no snapshot for key")

// Store is the byte-level persistence contract for collection snapshots.
type Store interface {

	/*
		Load returns the raw snapshot blob stored under key.

		Parameters:
		  - context: context.Context
		  - key: string (Collection key, e.g. "books")

		Returns:
		  - []byte: The stored blob
		  - error: ErrNoSnapshot if absent, connectivity errors otherwise
	*/
	Load(context context.Context, key string) ([]byte, error)

	/*
		Save overwrites the snapshot stored under key unconditionally.

		Description: Full-blob rewrite, last-write-wins. There is no
		compare-and-swap; the newest save is canonical.

		Parameters:
		  - context: context.Context
		  - key: string
		  - blob: []byte (Serialized collection)

		Returns:
		  - error: Connectivity or constraint errors
	*/
	Save(context context.Context, key string, blob []byte) error
}
