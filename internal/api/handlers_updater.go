// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jparkin/motodex/internal/models"
)

// handleRunUpdate triggers the daily update. A running job rejects the
// trigger with 409 carrying the running job's ID.
func (s *Server) handleRunUpdate(w http.ResponseWriter, r *http.Request) {
	jobID, err := s.updater.Run(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusAccepted, map[string]string{
		"job_id":           jobID,
		"status":           models.JobRunning,
		"check_status_url": fmt.Sprintf("/api/update-system/job-status/%s", jobID),
	})
}

func (s *Server) handleCancelUpdate(w http.ResponseWriter, r *http.Request) {
	canceled := s.updater.Cancel()
	respondData(w, r, http.StatusOK, map[string]bool{"canceled": canceled})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.updater.JobStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, job)
}

func (s *Server) handleUpdateHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	jobs, err := s.updater.History(r.Context(), limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

func (s *Server) handleRegionalCustomizations(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = "US"
	}

	customizations, err := s.updater.RegionalCustomizations(r.Context(), region)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"region":         region,
		"customizations": customizations,
	})
}
