// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package summary drafts book summaries through a third-party text-generation
provider.

Each user supplies their own provider API key, held session-scoped in Redis
and never persisted to the database. Generation is one request/response per
call: no retry, no streaming, no partial output.
*/
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lethanhduc/bookwise/internal/platform/constants"
)

// apiKeyTTL bounds how long a stored key outlives its last write. Keys are
// session-scoped credentials, not durable secrets.
const apiKeyTTL = 24 * time.Hour

// Key format heuristic. Advisory only; real validation happens on the first
// provider call.
const (
	apiKeyPrefix    = "AIza"
	apiKeyMinLength = 30
)

// KeyStore holds per-user provider API keys.
type KeyStore interface {
	Set(context context.Context, userID string, apiKey string) error
	Get(context context.Context, userID string) (string, error)
	Delete(context context.Context, userID string) error
}

// redisKeyStore implements [KeyStore] on Redis with a TTL per entry.
type redisKeyStore struct {
	client *redis.Client
}

// NewRedisKeyStore constructs the Redis-backed API key store.
func NewRedisKeyStore(client *redis.Client) KeyStore {
	return &redisKeyStore{client: client}
}

func (store *redisKeyStore) Set(context context.Context, userID string, apiKey string) error {
	key := constants.RedisPrefixAPIKey + userID
	if err := store.client.Set(context, key, apiKey, apiKeyTTL).Err(); err != nil {
		return fmt.Errorf("summary: failed to store api key: %w", err)
	}
	return nil
}

func (store *redisKeyStore) Get(context context.Context, userID string) (string, error) {
	key := constants.RedisPrefixAPIKey + userID

	apiKey, err := store.client.Get(context, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("summary: failed to load api key: %w", err)
	}

	return apiKey, nil
}

func (store *redisKeyStore) Delete(context context.Context, userID string) error {
	key := constants.RedisPrefixAPIKey + userID
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("summary: failed to delete api key: %w", err)
	}
	return nil
}

// looksLikeAPIKey applies the advisory format heuristic: expected prefix and
// a minimum length.
func looksLikeAPIKey(apiKey string) bool {
	return strings.HasPrefix(apiKey, apiKeyPrefix) && len(apiKey) >= apiKeyMinLength
}
