// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/constants"
	"github.com/lethanhduc/bookwise/internal/platform/sec"
	"github.com/lethanhduc/bookwise/internal/platform/snapshot"
)

// stubTokens signs tokens as opaque strings and remembers their claims.
type stubTokens struct {
	mu     sync.Mutex
	issued map[string]*sec.AuthClaims
}

func newStubTokens() *stubTokens {
	return &stubTokens{issued: make(map[string]*sec.AuthClaims)}
}

func (stub *stubTokens) GenerateAccessToken(tokenID, userID, name, email, role string, timeToLive time.Duration) (string, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	token := "token-" + tokenID
	stub.issued[token] = &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(timeToLive)),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
	}
	return token, nil
}

func (stub *stubTokens) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	claims, found := stub.issued[tokenString]
	if !found {
		return nil, fmt.Errorf("sec: invalid token")
	}
	return claims, nil
}

// memoryDenylist is an in-process Denylist for tests.
type memoryDenylist struct {
	mu     sync.Mutex
	denied map[string]bool
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{denied: make(map[string]bool)}
}

func (denylist *memoryDenylist) Deny(_ context.Context, tokenID string, _ time.Duration) error {
	denylist.mu.Lock()
	defer denylist.mu.Unlock()
	denylist.denied[tokenID] = true
	return nil
}

func (denylist *memoryDenylist) IsDenied(_ context.Context, tokenID string) (bool, error) {
	denylist.mu.Lock()
	defer denylist.mu.Unlock()
	return denylist.denied[tokenID], nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := snapshot.NewMemoryStore()
	accounts := snapshot.NewCollection(store, constants.CollectionAccounts, []Account{}, logger)

	return NewService(accounts, newStubTokens(), newMemoryDenylist(), logger)
}

func TestRegisterAndLogin(t *testing.T) {
	service := newTestService(t)

	registered, err := service.Register(context.Background(), RegisterInput{
		Name:     "Maya Linden",
		Email:    "maya@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, string(sec.RoleUser), registered.User.Role)

	session, err := service.Login(context.Background(), LoginInput{
		Email:    "maya@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
}

// Logging in twice with the same credentials yields the same user snapshot.
func TestLoginIdempotentSessionState(t *testing.T) {
	service := newTestService(t)
	require.NoError(t, service.SeedAdmin(context.Background(), "admin@bookwise.app", "admin-secret"))

	first, err := service.Login(context.Background(), LoginInput{Email: "admin@bookwise.app", Password: "admin-secret"})
	require.NoError(t, err)
	second, err := service.Login(context.Background(), LoginInput{Email: "admin@bookwise.app", Password: "admin-secret"})
	require.NoError(t, err)

	assert.Equal(t, first.User, second.User)
	assert.Equal(t, string(sec.RoleAdmin), first.User.Role)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	service := newTestService(t)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "First", Email: "Test@x.com", Password: "password-1",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		Name: "Second", Email: "test@x.com", Password: "password-2",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := newTestService(t)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Maya", Email: "maya@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{Email: "maya@example.com", Password: "wrong"})
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = service.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct horse"})
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	service := newTestService(t)

	session, err := service.Register(context.Background(), RegisterInput{
		Name: "Maya", Email: "maya@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := service.VerifyToken(session.Token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), claims))

	_, err = service.VerifyToken(session.Token)
	require.Error(t, err)
}

func TestSeedAdminIdempotent(t *testing.T) {
	service := newTestService(t)

	require.NoError(t, service.SeedAdmin(context.Background(), "admin@bookwise.app", "admin-secret"))
	require.NoError(t, service.SeedAdmin(context.Background(), "admin@bookwise.app", "different-password"))

	// The original password still works; re-seeding never rotates it.
	session, err := service.Login(context.Background(), LoginInput{
		Email: "admin@bookwise.app", Password: "admin-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, string(sec.RoleAdmin), session.User.Role)
}

func TestCurrentUser(t *testing.T) {
	service := newTestService(t)

	session, err := service.Register(context.Background(), RegisterInput{
		Name: "Maya", Email: "maya@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := service.VerifyToken(session.Token)
	require.NoError(t, err)

	user, err := service.CurrentUser(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, session.User, user)
}

func TestRegisterValidation(t *testing.T) {
	service := newTestService(t)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Maya", Email: "not-an-email", Password: "short",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 2)
}
