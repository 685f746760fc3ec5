// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package models

import "time"

// Role constants, ordered User < Moderator < Admin.
const (
	RoleUser      = "User"
	RoleModerator = "Moderator"
	RoleAdmin     = "Admin"
)

// roleRank orders roles for comparison. Unknown roles rank below User.
var roleRank = map[string]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// IsValidRole checks whether a role is recognized.
func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleAtLeast reports whether role meets or exceeds min in the role order.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// User is an account record. Exactly one of PasswordHash or External is
// set: password users register locally, external users arrive with a
// verified identity claim.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash,omitempty"`
	External     bool      `json:"external,omitempty"`
	Role         string    `json:"role"`
	PictureURL   string    `json:"picture_url,omitempty"`
	Deleted      bool      `json:"deleted,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the user shape safe to expose in API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		PictureURL: u.PictureURL,
		CreatedAt:  u.CreatedAt,
	}
}

// PublicUser is the sanitized user representation.
type PublicUser struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	PictureURL string    `json:"picture_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session kinds: bearer tokens are JWTs validated statelessly; session IDs
// are opaque server-side records.
const (
	SessionKindBearer  = "bearer"
	SessionKindSession = "session"
)

// Session is an issued credential record.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked,omitempty"`
}

// IsExpired reports whether the session has passed its expiry or been
// revoked.
func (s *Session) IsExpired() bool {
	return s.Revoked || time.Now().After(s.ExpiresAt)
}

// AuthResult is the response payload for register, login, and external
// login.
type AuthResult struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// IdentityClaim is a verified external identity, produced by an upstream
// OAuth flow outside this service.
type IdentityClaim struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Picture string `json:"picture" validate:"omitempty,url"`
}
