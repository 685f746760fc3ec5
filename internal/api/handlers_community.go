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

func (s *Server) handleListGarage(w http.ResponseWriter, r *http.Request) {
	items, err := s.interactions.ListGarage(r.Context(), callerID(r), false)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"garage": items})
}

func (s *Server) handleAddGarageItem(w http.ResponseWriter, r *http.Request) {
	var req models.GarageItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	item, err := s.interactions.AddGarageItem(r.Context(), callerID(r), &req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, item)
}

func (s *Server) handleUpdateGarageItem(w http.ResponseWriter, r *http.Request) {
	var req models.GarageItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	item, err := s.interactions.UpdateGarageItem(r.Context(), callerID(r), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, item)
}

func (s *Server) handleRemoveGarageItem(w http.ResponseWriter, r *http.Request) {
	if err := s.interactions.RemoveGarageItem(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.interactions.ListGroups(r.Context(), callerID(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"groups": groups})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.GroupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	group, err := s.interactions.CreateGroup(r.Context(), callerID(r), &req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, group)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.interactions.GetGroup(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, group)
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.interactions.JoinGroup(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, group)
}

func (s *Server) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.interactions.LeaveGroup(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]bool{"left": true})
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.interactions.ListAchievements(r.Context(), callerID(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"achievements": achievements})
}

func (s *Server) handleListMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.interactions.ListMyRequests(r.Context(), callerID(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequestCreate
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	created, err := s.interactions.CreateRequest(r.Context(), callerID(r), &req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, created)
}

// handleAnalyticsEvent records a client-reported usage event. Best effort:
// the only failure mode surfaced to the client is an unknown kind.
func (s *Server) handleAnalyticsEvent(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyticsEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if !models.IsValidEventKind(req.Kind) {
		respondError(w, r, http.StatusBadRequest, CodeInvalidInput, "unknown event kind", nil)
		return
	}

	s.analytics.Record(callerID(r), req.Kind, req.Payload)
	respondData(w, r, http.StatusAccepted, map[string]bool{"recorded": true})
}
