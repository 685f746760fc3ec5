// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/models"
)

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.interactions.Favorite(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]bool{"favorited": true})
}

func (s *Server) handleUnfavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.interactions.Unfavorite(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := s.interactions.ListFavorites(r.Context(), callerID(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"motorcycles": list})
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var req models.RateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	rating, err := s.interactions.Rate(r.Context(), callerID(r), chi.URLParam(r, "id"), req.Rating, req.ReviewText)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, rating)
}

func (s *Server) handleGetRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.interactions.GetRatings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"ratings": ratings})
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	comment, err := s.interactions.Comment(r.Context(), callerID(r), chi.URLParam(r, "id"), req.Content, req.ParentCommentID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, comment)
}

func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.interactions.GetComments(r.Context(), chi.URLParam(r, "id"), callerID(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"comments": comments})
}

func (s *Server) handleLikeComment(w http.ResponseWriter, r *http.Request) {
	liked, err := s.interactions.LikeComment(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]bool{"liked": liked})
}

func (s *Server) handleFlagComment(w http.ResponseWriter, r *http.Request) {
	if err := s.interactions.FlagComment(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]bool{"flagged": true})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.interactions.DeleteComment(r.Context(), auth.UserFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
