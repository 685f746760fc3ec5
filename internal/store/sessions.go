// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/jparkin/motodex/internal/models"
)

// CreateSession stores a session and its user index entry.
func (s *Store) CreateSession(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(sessionKeyPrefix+sess.ID), data); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		userKey := []byte(sessionUserIdxPrefix + sess.UserID + ":" + sess.ID)
		if err := txn.Set(userKey, []byte(sess.ID)); err != nil {
			return fmt.Errorf("set user index: %w", err)
		}
		return nil
	})
}

// GetSession retrieves a session by ID. Expired and revoked sessions
// return ErrNotFound.
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return nil, err
	}

	if sess.IsExpired() {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// RevokeSession marks a session revoked. Missing sessions are a no-op.
func (s *Store) RevokeSession(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(sessionKeyPrefix + id)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		var sess models.Session
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
		if err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}

		sess.Revoked = true
		data, err := json.Marshal(&sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		return txn.Set(key, data)
	})
}

// CleanupExpiredSessions deletes expired and revoked sessions plus their
// index entries. Returns the number removed. Run by the session janitor.
func (s *Store) CleanupExpiredSessions(ctx context.Context) (int, error) {
	type doomed struct {
		id     string
		userID string
	}
	var expired []doomed

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sess models.Session
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sess)
			})
			if err != nil {
				continue
			}
			if sess.IsExpired() {
				expired = append(expired, doomed{id: sess.ID, userID: sess.UserID})
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	count := 0
	for _, d := range expired {
		err := s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(sessionKeyPrefix + d.id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			userKey := []byte(sessionUserIdxPrefix + d.userID + ":" + d.id)
			if err := txn.Delete(userKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			return nil
		})
		if err != nil {
			continue
		}
		count++
	}
	return count, nil
}
