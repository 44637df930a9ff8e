// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package auth implements account registration, login, and session management.

Accounts live in one snapshot collection; email uniqueness is enforced by a
case-insensitive scan at registration time. Sessions are stateless JWTs
carrying the full current-user snapshot, so the admin flag and the role can
never disagree. Logout revokes the individual token via a Redis denylist
keyed on the token id.

The fixed admin identity is seeded into the accounts collection at startup
from configuration, with a bcrypt hash like every other account. It goes
through the same login path as regular users.
*/
package auth

import (
	"time"
)

// Account is the persisted account record. The password hash never leaves
// this package; API responses carry [User] instead.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"password_hash"`
	Role           string    `json:"role"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	DateRegistered time.Time `json:"date_registered"`
}

// User is the public projection of an account.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	DateRegistered time.Time `json:"date_registered"`
}

// Public converts an account into its API projection.
func (account Account) Public() User {
	return User{
		ID:             account.ID,
		Name:           account.Name,
		Email:          account.Email,
		Role:           account.Role,
		AvatarURL:      account.AvatarURL,
		DateRegistered: account.DateRegistered,
	}
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the payload for authenticating.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the response for successful register and login calls: a signed
// access token plus the user snapshot embedded in it.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
