// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresStore implements [Store] on a single PostgreSQL table.
//
// # Schema
//
// collection_snapshots(collection_key text primary key, payload jsonb,
// updated_at timestamptz). One row per collection; saves upsert the row.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed snapshot store.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

/*
Load returns the raw snapshot blob stored under key.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - []byte: The stored JSONB payload
  - error: ErrNoSnapshot when the row is absent
*/
func (store *postgresStore) Load(context context.Context, key string) ([]byte, error) {

	const query = `SELECT payload FROM collection_snapshots WHERE collection_key = $1`

	var payload []byte
	err := store.pool.QueryRow(context, query, key).Scan(&payload)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("snapshot_load_failed: %w", err)
	}

	return payload, nil
}

/*
Save overwrites the snapshot stored under key unconditionally.

Description: Upserts the single collection row. Last write wins by
construction; the upsert carries no version check.

Parameters:
  - context: context.Context
  - key: string
  - blob: []byte

Returns:
  - error: Execution errors
*/
func (store *postgresStore) Save(context context.Context, key string, blob []byte) error {

	const query = `
		INSERT INTO collection_snapshots (collection_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (collection_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`

	if _, err := store.pool.Exec(context, query, key, blob); err != nil {
		return fmt.Errorf("snapshot_save_failed: %w", err)
	}

	return nil
}
