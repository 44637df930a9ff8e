// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lethanhduc/bookwise/internal/platform/ctxutil"
	"github.com/lethanhduc/bookwise/internal/platform/sec"
)

// stubVerifier accepts exactly one token string.
type stubVerifier struct {
	token  string
	claims *sec.AuthClaims
}

func (stub *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == stub.token {
		return stub.claims, nil
	}
	return nil, fmt.Errorf("sec: invalid token")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

func claimsFor(role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "user-1", Name: "Maya", Email: "maya@example.com", Role: string(role)}
}

func TestAuthenticateAnonymousPassThrough(t *testing.T) {
	verifier := &stubVerifier{token: "good", claims: claimsFor(sec.RoleUser)}

	var sawClaims *sec.AuthClaims
	handler := Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, sawClaims)
}

func TestAuthenticateInjectsClaims(t *testing.T) {
	verifier := &stubVerifier{token: "good", claims: claimsFor(sec.RoleUser)}

	var sawClaims *sec.AuthClaims
	handler := Authenticate(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sawClaims = ctxutil.GetAuthUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-1", sawClaims.UserID)
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	verifier := &stubVerifier{token: "good", claims: claimsFor(sec.RoleUser)}
	handler := Authenticate(verifier)(okHandler())

	testCases := []struct {
		name   string
		header string
	}{
		{name: "wrong token", header: "Bearer stale"},
		{name: "wrong scheme", header: "Basic good"},
		{name: "malformed", header: "Bearer"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Authorization", testCase.header)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(okHandler())

	// Anonymous requests get 401.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated requests pass.
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claimsFor(sec.RoleUser)))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

// The 401/403 split: anonymous callers are unauthenticated, signed-in
// non-admins are forbidden.
func TestRequireRole(t *testing.T) {
	handler := RequireRole(sec.RoleAdmin)(okHandler())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	asUser := httptest.NewRequest(http.MethodGet, "/", nil)
	asUser = asUser.WithContext(ctxutil.WithAuthUser(asUser.Context(), claimsFor(sec.RoleUser)))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, asUser)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	asAdmin := httptest.NewRequest(http.MethodGet, "/", nil)
	asAdmin = asAdmin.WithContext(ctxutil.WithAuthUser(asAdmin.Context(), claimsFor(sec.RoleAdmin)))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, asAdmin)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("Bearer"))
	assert.Empty(t, bearerToken(""))
}
