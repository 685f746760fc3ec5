// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/query"
)

// callerID returns the authenticated user's ID, "" for anonymous.
func callerID(r *http.Request) string {
	if u := auth.UserFromContext(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

// queryInt parses an integer query parameter, falling back to def when
// absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", query.ErrInvalidFilter, key)
	}
	return n, nil
}

func (s *Server) handleListMotorcycles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := query.ParseFilter(q)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	sortSpec, err := query.ParseSort(q.Get("sort_by"), q.Get("sort_order"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", s.cfg.API.DefaultPageSize)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	list, pagination, err := s.query.List(r.Context(), filter, sortSpec, page, limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if filter.Search != "" {
		s.analytics.Record(callerID(r), models.EventSearch, map[string]string{
			"query":   filter.Search,
			"results": strconv.Itoa(pagination.TotalCount),
		})
	}

	respondData(w, r, http.StatusOK, map[string]interface{}{
		"motorcycles": list,
		"pagination":  pagination,
	})
}

func (s *Server) handleGetMotorcycle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.query.Get(r.Context(), id, r.URL.Query().Get("region"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	s.analytics.Record(callerID(r), models.EventMotorcycleClick, map[string]string{
		"motorcycle_id": id,
	})
	respondData(w, r, http.StatusOK, m)
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hide := q.Get("hide_unavailable") == "true"

	summary, err := s.query.Summary(r.Context(), q.Get("region"), hide, 0)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, summary)
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.query.Options(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, opts)
}

func (s *Server) handleFilterFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := s.query.Features(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"features": features})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	suggestions := s.query.Suggest(r.Context(), q.Get("q"), limit)
	respondData(w, r, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	list, err := s.query.Compare(r.Context(), req.IDs, r.URL.Query().Get("region"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"motorcycles": list})
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.query.Pricing(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("region"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"pricing": snapshots})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	n, err := s.seedCatalog(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, map[string]interface{}{"seeded": n})
}
