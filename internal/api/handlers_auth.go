// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"net/http"

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	result, err := s.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, result)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	result, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, result)
}

// handleExternalProfile signs in a verified external identity, creating
// the account on first sight.
func (s *Server) handleExternalProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ExternalProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	result, err := s.auth.ExternalLogin(r.Context(), &models.IdentityClaim{
		Email:   req.Email,
		Name:    req.Name,
		Picture: req.Picture,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, result)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	respondData(w, r, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

// handleLogout revokes the presented session. Bearer tokens are stateless
// and simply expire.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sessionID := r.Header.Get("X-Session-ID"); sessionID != "" {
		if err := s.auth.Logout(r.Context(), sessionID); err != nil {
			respondErr(w, r, err)
			return
		}
	}
	respondData(w, r, http.StatusOK, map[string]string{"status": "logged out"})
}
