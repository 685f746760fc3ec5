// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/jparkin/motodex/internal/models"
)

// StartJob allocates a running update job. The job record and the
// running-job marker are written in one transaction, so at most one job
// can be Running: a second start returns ConflictError carrying the
// existing job's ID.
func (s *Store) StartJob(ctx context.Context, job *models.UpdateJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(runningJobKey))
		if err == nil {
			var runningID string
			verr := item.Value(func(val []byte) error {
				runningID = string(val)
				return nil
			})
			if verr != nil {
				return verr
			}
			return &ConflictError{ID: runningID, Reason: "update job already running"}
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check running job: %w", err)
		}

		if err := txn.Set([]byte(jobKeyPrefix+job.ID), data); err != nil {
			return fmt.Errorf("set job: %w", err)
		}
		return txn.Set([]byte(runningJobKey), []byte(job.ID))
	})
	if errors.Is(err, badger.ErrConflict) {
		return &ConflictError{ID: "", Reason: "concurrent job start"}
	}
	return err
}

// FinishJob writes the job's terminal state and clears the running marker.
func (s *Store) FinishJob(ctx context.Context, job *models.UpdateJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(jobKeyPrefix+job.ID), data); err != nil {
			return fmt.Errorf("set job: %w", err)
		}
		err := txn.Delete([]byte(runningJobKey))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("clear running marker: %w", err)
		}
		return nil
	})
}

// UpdateJobRecord persists intermediate job progress without touching the
// running marker.
func (s *Store) UpdateJobRecord(ctx context.Context, job *models.UpdateJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(jobKeyPrefix+job.ID), data)
	})
}

// GetJob retrieves an update job by ID.
func (s *Store) GetJob(ctx context.Context, id string) (*models.UpdateJob, error) {
	var job models.UpdateJob

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(jobKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get job: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &job)
		})
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// RunningJobID returns the ID of the running job, or "" when idle.
func (s *Store) RunningJobID(ctx context.Context) (string, error) {
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(runningJobKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get running marker: %w", err)
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	return id, err
}

// ListJobs returns update jobs newest-first, at most limit (0 = all).
func (s *Store) ListJobs(ctx context.Context, limit int) ([]*models.UpdateJob, error) {
	var out []*models.UpdateJob

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(jobKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var job models.UpdateJob
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &job)
			})
			if err != nil {
				return fmt.Errorf("unmarshal job: %w", err)
			}
			out = append(out, &job)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
