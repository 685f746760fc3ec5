// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuth(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	jwtMgr, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:     testSecret,
		TokenLifetime: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	// Minimal argon2 parameters keep the test fast.
	hasher := NewPasswordHasher(1, 8*1024)
	return NewService(st, jwtMgr, hasher), st
}

func TestPasswordHashVerify(t *testing.T) {
	h := NewPasswordHasher(1, 8*1024)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := h.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashParamsSurviveChange(t *testing.T) {
	old := NewPasswordHasher(1, 8*1024)
	hash, err := old.Hash("secret-password")
	require.NoError(t, err)

	// A hasher with different work factors still verifies old hashes
	// because parameters travel inside the hash string.
	current := NewPasswordHasher(2, 16*1024)
	ok, err := current.Verify("secret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJWTRoundTrip(t *testing.T) {
	mgr, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenLifetime: time.Hour})
	require.NoError(t, err)

	token, err := mgr.GenerateToken("u1", models.RoleModerator)
	require.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleModerator, claims.Role)
}

func TestJWTRejectsTampering(t *testing.T) {
	mgr, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, TokenLifetime: time.Hour})
	require.NoError(t, err)

	token, err := mgr.GenerateToken("u1", models.RoleUser)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = mgr.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestJWTSecretTooShort(t *testing.T) {
	_, err := NewJWTManager(&config.SecurityConfig{JWTSecret: "short", TokenLifetime: time.Hour})
	assert.Error(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "rider@example.com", "passw0rd!", "Rider")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleUser, result.User.Role)

	login, err := svc.Login(ctx, "RIDER@example.com", "passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "rider@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "passw0rd!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "rider@example.com", "passw0rd!", "Rider")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "rider@example.com", "different", "Other")
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestExternalLogin(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	claim := &models.IdentityClaim{Email: "ext@example.com", Name: "Ext Rider"}
	first, err := svc.ExternalLogin(ctx, claim)
	require.NoError(t, err)

	second, err := svc.ExternalLogin(ctx, claim)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	// External accounts have no password to log in with.
	_, err = svc.Login(ctx, "ext@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateBearer(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "rider@example.com", "passw0rd!", "Rider")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, result.Token, "")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)

	_, err = svc.Authenticate(ctx, "garbage", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateSession(t *testing.T) {
	svc, st := newTestAuth(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "rider@example.com", "passw0rd!", "Rider")
	require.NoError(t, err)

	sess := &models.Session{
		ID: "sess-1", UserID: result.User.ID, Kind: models.SessionKindSession,
		IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, st.CreateSession(ctx, sess))

	user, err := svc.Authenticate(ctx, "", "sess-1")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)

	require.NoError(t, svc.Logout(ctx, "sess-1"))
	_, err = svc.Authenticate(ctx, "", "sess-1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRequireRole(t *testing.T) {
	svc, _ := newTestAuth(t)

	user := &models.User{ID: "u1", Role: models.RoleModerator}
	assert.NoError(t, svc.RequireRole(user, models.RoleUser))
	assert.NoError(t, svc.RequireRole(user, models.RoleModerator))
	assert.ErrorIs(t, svc.RequireRole(user, models.RoleAdmin), ErrForbidden)
}
