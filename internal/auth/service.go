// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package auth implements identity: registration, login, external-identity
// login, credential validation, and role gating. Raw passwords enter the
// system only through Register and Login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/logging"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// IdentityStore is the slice of the store the auth service needs.
type IdentityStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	RevokeSession(ctx context.Context, id string) error
}

// Service implements the identity operations.
type Service struct {
	store  IdentityStore
	jwt    *JWTManager
	hasher *PasswordHasher
}

// NewService wires the identity service.
func NewService(st IdentityStore, jwt *JWTManager, hasher *PasswordHasher) *Service {
	return &Service{store: st, jwt: jwt, hasher: hasher}
}

// Register creates a password account and issues a token. Duplicate emails
// surface as store.ErrConflict.
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.AuthResult, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	return s.issue(ctx, user)
}

// Login verifies a password credential and issues a token. Unknown emails
// and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		return nil, ErrInvalidCredentials
	}
	if user.External || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// ExternalLogin accepts a verified identity claim, creating the account on
// first sight. External accounts never hold a password hash.
func (s *Service) ExternalLogin(ctx context.Context, claim *models.IdentityClaim) (*models.AuthResult, error) {
	user, err := s.store.GetUserByEmail(ctx, claim.Email)
	if errors.Is(err, store.ErrNotFound) {
		user = &models.User{
			ID:         uuid.New().String(),
			Email:      claim.Email,
			Name:       claim.Name,
			External:   true,
			Role:       models.RoleUser,
			PictureURL: claim.Picture,
			CreatedAt:  time.Now(),
		}
		if cerr := s.store.CreateUser(ctx, user); cerr != nil {
			// A concurrent first login may have won the email index.
			if errors.Is(cerr, store.ErrConflict) {
				user, err = s.store.GetUserByEmail(ctx, claim.Email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, cerr
			}
		} else {
			logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("external user created")
		}
	} else if err != nil {
		return nil, err
	}

	if user.Deleted {
		return nil, ErrUnauthenticated
	}
	return s.issue(ctx, user)
}

// Authenticate resolves a bearer token or an opaque session ID to a user.
func (s *Service) Authenticate(ctx context.Context, bearerToken, sessionID string) (*models.User, error) {
	switch {
	case bearerToken != "":
		claims, err := s.jwt.ValidateToken(bearerToken)
		if err != nil {
			return nil, err
		}
		return s.loadUser(ctx, claims.UserID)
	case sessionID != "":
		sess, err := s.store.GetSession(ctx, sessionID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		if err != nil {
			return nil, err
		}
		return s.loadUser(ctx, sess.UserID)
	default:
		return nil, ErrUnauthenticated
	}
}

// RequireRole checks the user's current role against a minimum.
func (s *Service) RequireRole(user *models.User, minRole string) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if !models.RoleAtLeast(user.Role, minRole) {
		return ErrForbidden
	}
	return nil
}

// Logout revokes a session ID credential. Bearer tokens are stateless and
// simply expire.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.RevokeSession(ctx, sessionID)
}

func (s *Service) loadUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// issue mints a bearer token and records a matching session row so the
// credential shows up in session management and the janitor's sweep.
func (s *Service) issue(ctx context.Context, user *models.User) (*models.AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Kind:      models.SessionKindBearer,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.jwt.Lifetime()),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	return &models.AuthResult{User: user.Public(), Token: token}, nil
}
