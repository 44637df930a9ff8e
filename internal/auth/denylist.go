// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lethanhduc/bookwise/internal/platform/constants"
)

// Denylist records revoked token ids until their natural expiry.
type Denylist interface {
	Deny(context context.Context, tokenID string, timeToLive time.Duration) error
	IsDenied(context context.Context, tokenID string) (bool, error)
}

// redisDenylist implements [Denylist] on Redis with per-entry TTLs, so
// revocation records clean themselves up when the token would have expired
// anyway.
type redisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist constructs the Redis-backed token denylist.
func NewRedisDenylist(client *redis.Client) Denylist {
	return &redisDenylist{client: client}
}

func (denylist *redisDenylist) Deny(context context.Context, tokenID string, timeToLive time.Duration) error {
	key := constants.RedisPrefixTokenDenied + tokenID
	if err := denylist.client.Set(context, key, "1", timeToLive).Err(); err != nil {
		return fmt.Errorf("auth: failed to deny token: %w", err)
	}
	return nil
}

func (denylist *redisDenylist) IsDenied(context context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixTokenDenied + tokenID
	count, err := denylist.client.Exists(context, key).Result()
	if err != nil {
		return false, fmt.Errorf("auth: failed to check token denylist: %w", err)
	}
	return count > 0, nil
}
