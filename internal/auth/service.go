// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package auth

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/constants"
	"github.com/lethanhduc/bookwise/internal/platform/sec"
	"github.com/lethanhduc/bookwise/internal/platform/snapshot"
	"github.com/lethanhduc/bookwise/internal/platform/validate"
	"github.com/lethanhduc/bookwise/pkg/uuid"
)

// TokenProvider signs and verifies access tokens. Implemented by
// [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(tokenID, userID, name, email, role string, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements account and session management.
type Service struct {
	accounts *snapshot.Collection[Account]
	tokens   TokenProvider
	denylist Denylist
	logger   *slog.Logger
}

// NewService wires the auth service.
func NewService(accounts *snapshot.Collection[Account], tokens TokenProvider, denylist Denylist, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		denylist: denylist,
		logger:   logger,
	}
}

/*
Register creates an account and logs the new user in.

Description: Email uniqueness is enforced case-insensitively by scanning the
accounts collection inside the same read-modify-write as the append, so two
racing registrations cannot both pass the check against a stale snapshot.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - Session: Fresh token plus user snapshot
  - error: CONFLICT for a taken email, VALIDATION_ERROR, STORAGE_ERROR
*/
func (service *Service) Register(context stdctx.Context, input RegisterInput) (Session, error) {
	validator := &validate.Validator{}
	err := validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, 100).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 8).
		MaxLen("password", input.Password, 72).
		Err()
	if err != nil {
		return Session{}, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}

	created := Account{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		PasswordHash:   passwordHash,
		Role:           string(sec.RoleUser),
		DateRegistered: time.Now().UTC(),
	}

	_, err = service.accounts.Update(context, func(accounts []Account) ([]Account, error) {
		for _, existing := range accounts {
			if strings.EqualFold(existing.Email, created.Email) {
				return nil, apperr.Conflict("Email already registered")
			}
		}
		return append(accounts, created), nil
	})
	if err != nil {
		return Session{}, err
	}

	service.logger.Info("account_registered", slog.String("user_id", created.ID))

	return service.issueSession(created)
}

/*
Login authenticates an email and password pair.

Description: Linear scan of the accounts collection with a case-insensitive
email match and a bcrypt comparison. The admin account is a normal record in
the collection, so it takes the same path. The failure message never reveals
whether the email exists.

Returns:
  - Session
  - error: UNAUTHORIZED on any credential mismatch
*/
func (service *Service) Login(context stdctx.Context, input LoginInput) (Session, error) {
	accounts, err := service.accounts.Load(context)
	if err != nil {
		return Session{}, err
	}

	for _, candidate := range accounts {
		if !strings.EqualFold(candidate.Email, strings.TrimSpace(input.Email)) {
			continue
		}
		if !sec.CheckPasswordHash(input.Password, candidate.PasswordHash) {
			break
		}
		return service.issueSession(candidate)
	}

	return Session{}, apperr.Unauthorized("Invalid email or password")
}

/*
Logout revokes the presented token.

Description: The token id (jti) is written to the denylist with a TTL equal
to the token's remaining lifetime. Other tokens of the same user stay valid.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (From the verified request token)

Returns:
  - error
*/
func (service *Service) Logout(context stdctx.Context, claims *sec.AuthClaims) error {
	if claims == nil || claims.ID == "" {
		return apperr.Unauthorized("Authentication required")
	}

	timeToLive := constants.AccessTokenTTL
	if claims.ExpiresAt != nil {
		timeToLive = time.Until(claims.ExpiresAt.Time)
	}
	if timeToLive <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}

	if err := service.denylist.Deny(context, claims.ID, timeToLive); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("session_revoked", slog.String("user_id", claims.UserID))
	return nil
}

/*
CurrentUser returns the fresh account record behind a verified token.

Returns:
  - User
  - error: UNAUTHORIZED when the account no longer exists
*/
func (service *Service) CurrentUser(context stdctx.Context, claims *sec.AuthClaims) (User, error) {
	if claims == nil {
		return User{}, apperr.Unauthorized("Authentication required")
	}

	accounts, err := service.accounts.Load(context)
	if err != nil {
		return User{}, err
	}

	for _, candidate := range accounts {
		if candidate.ID == claims.UserID {
			return candidate.Public(), nil
		}
	}

	return User{}, apperr.Unauthorized("Account no longer exists")
}

// VerifyToken implements [middleware.TokenVerifier]. It checks the JWT
// signature and then the revocation denylist, so logged-out tokens fail
// before their natural expiry.
func (service *Service) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	denied, err := service.denylist.IsDenied(stdctx.Background(), claims.ID)
	if err != nil {
		return nil, err
	}
	if denied {
		return nil, fmt.Errorf("auth: token has been revoked")
	}

	return claims, nil
}

/*
SeedAdmin ensures the configured admin account exists.

Description: Idempotent; called once at startup. An existing account with
the admin email is promoted to the admin role if needed but its password is
left alone, so a rotated config password only applies to fresh deployments.

Parameters:
  - context: context.Context
  - email: string
  - password: string (Hashed before storage)

Returns:
  - error
*/
func (service *Service) SeedAdmin(context stdctx.Context, email string, password string) error {
	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	seeded := false
	_, err = service.accounts.Update(context, func(accounts []Account) ([]Account, error) {
		for position, existing := range accounts {
			if !strings.EqualFold(existing.Email, email) {
				continue
			}
			if existing.Role != string(sec.RoleAdmin) {
				accounts[position].Role = string(sec.RoleAdmin)
				seeded = true
			}
			return accounts, nil
		}

		seeded = true
		return append(accounts, Account{
			ID:             uuid.New(),
			Name:           "Administrator",
			Email:          email,
			PasswordHash:   passwordHash,
			Role:           string(sec.RoleAdmin),
			DateRegistered: time.Now().UTC(),
		}), nil
	})
	if err != nil {
		return err
	}

	if seeded {
		service.logger.Info("admin_account_seeded", slog.String("email", email))
	}
	return nil
}

// issueSession signs a fresh access token carrying the account snapshot.
func (service *Service) issueSession(account Account) (Session, error) {
	token, err := service.tokens.GenerateAccessToken(
		uuid.New(),
		account.ID,
		account.Name,
		account.Email,
		account.Role,
		constants.AccessTokenTTL,
	)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}

	return Session{Token: token, User: account.Public()}, nil
}
