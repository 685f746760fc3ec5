// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package store persists all Motodex collections in BadgerDB. Every record
// is a JSON document under a typed key prefix; secondary lookups use index
// keys that point back at the primary key. All writes are atomic per
// document via Badger transactions.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/jparkin/motodex/internal/logging"
)

// Key prefixes for primary records.
const (
	motorcycleKeyPrefix  = "moto:"
	userKeyPrefix        = "user:"
	sessionKeyPrefix     = "session:"
	favoriteKeyPrefix    = "fav:"
	ratingKeyPrefix      = "rating:"
	commentKeyPrefix     = "comment:"
	bannerKeyPrefix      = "banner:"
	garageKeyPrefix      = "garage:"
	groupKeyPrefix       = "group:"
	achievementKeyPrefix = "achievement:"
	userAchKeyPrefix     = "user_ach:"
	counterKeyPrefix     = "counter:"
	requestKeyPrefix     = "request:"
	jobKeyPrefix         = "job:"
	analyticsKeyPrefix   = "event:"
)

// Index key prefixes. Index values hold the referenced primary ID.
const (
	userEmailIdxPrefix   = "user_email:"
	sessionUserIdxPrefix = "session_user:"
	ratingMotoIdxPrefix  = "rating_moto:"
	commentMotoIdxPrefix = "comment_moto:"
	requestUserIdxPrefix = "request_user:"
	runningJobKey        = "job_running"
)

// Store wraps a BadgerDB handle and exposes typed collection access.
type Store struct {
	db *badger.DB
}

// Open opens or creates the database at path. An empty path opens an
// in-memory database, used by tests.
func Open(path string) (*Store, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is usable. Used by the readiness probe.
func (s *Store) Ping() error {
	err := s.db.View(func(txn *badger.Txn) error { return nil })
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Str("component", "badger").Msgf(format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Str("component", "badger").Msgf(format, args...)
}
