// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jparkin/motodex/internal/models"
)

func (s *Server) handleLiveBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := s.admin.LiveBanners(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"banners": banners})
}

func (s *Server) handleAdminListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := s.admin.ListBanners(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"banners": banners})
}

func (s *Server) handleCreateBanner(w http.ResponseWriter, r *http.Request) {
	var req models.BannerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	banner, err := s.admin.CreateBanner(r.Context(), &req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, banner)
}

func (s *Server) handleUpdateBanner(w http.ResponseWriter, r *http.Request) {
	var req models.BannerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	banner, err := s.admin.UpdateBanner(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, banner)
}

func (s *Server) handleDeleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteBanner(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.admin.Stats(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, stats)
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"users": users})
}

func (s *Server) handleSetUserRole(w http.ResponseWriter, r *http.Request) {
	user, err := s.admin.SetUserRole(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("new_role"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, user)
}

func (s *Server) handleAdminListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.admin.ListRequests(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) handleResolveRequest(w http.ResponseWriter, r *http.Request) {
	var upd models.RequestStatusUpdate
	if err := decodeJSON(r, &upd); err != nil {
		respondErr(w, r, err)
		return
	}

	req, err := s.admin.ResolveRequest(r.Context(), chi.URLParam(r, "id"), &upd)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, req)
}
