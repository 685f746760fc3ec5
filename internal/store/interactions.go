// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/jparkin/motodex/internal/models"
)

// Favorites are keyed fav:<user>:<motorcycle> so uniqueness per pair is
// structural and a user's favorites are one prefix scan.

// SetFavorite records a favorite. Setting an existing pair is a no-op.
func (s *Store) SetFavorite(ctx context.Context, f *models.Favorite) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal favorite: %w", err)
	}

	key := []byte(favoriteKeyPrefix + f.UserID + ":" + f.MotorcycleID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return nil
		}
		return txn.Set(key, data)
	})
}

// DeleteFavorite removes a favorite. Absent pairs are a no-op.
func (s *Store) DeleteFavorite(ctx context.Context, userID, motorcycleID string) error {
	key := []byte(favoriteKeyPrefix + userID + ":" + motorcycleID)
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// HasFavorite reports whether the pair exists.
func (s *Store) HasFavorite(ctx context.Context, userID, motorcycleID string) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(favoriteKeyPrefix + userID + ":" + motorcycleID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// ListFavorites returns a user's favorites.
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]*models.Favorite, error) {
	var out []*models.Favorite

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(favoriteKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var f models.Favorite
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &f)
			})
			if err != nil {
				return fmt.Errorf("unmarshal favorite: %w", err)
			}
			out = append(out, &f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountFavorites returns the total favorite count across all users.
func (s *Store) CountFavorites(ctx context.Context) (int, error) {
	return s.countPrefix(favoriteKeyPrefix)
}

// CountFavoritesForUser returns one user's favorite count.
func (s *Store) CountFavoritesForUser(ctx context.Context, userID string) (int, error) {
	return s.countPrefix(favoriteKeyPrefix + userID + ":")
}

// Ratings are keyed rating:<motorcycle>:<user>. One rating per pair is
// structural; a motorcycle's ratings are one prefix scan.

// PutRating creates or replaces the rating for its (user, motorcycle)
// pair.
func (s *Store) PutRating(ctx context.Context, r *models.Rating) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}

	key := []byte(ratingKeyPrefix + r.MotorcycleID + ":" + r.UserID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetRating returns the rating for a (user, motorcycle) pair.
func (s *Store) GetRating(ctx context.Context, motorcycleID, userID string) (*models.Rating, error) {
	var r models.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ratingKeyPrefix + motorcycleID + ":" + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get rating: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRatingsForMotorcycle returns all ratings for one motorcycle.
func (s *Store) ListRatingsForMotorcycle(ctx context.Context, motorcycleID string) ([]*models.Rating, error) {
	var out []*models.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ratingKeyPrefix + motorcycleID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r models.Rating
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return fmt.Errorf("unmarshal rating: %w", err)
			}
			out = append(out, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountRatings returns the total rating count across the catalog.
func (s *Store) CountRatings(ctx context.Context) (int, error) {
	return s.countPrefix(ratingKeyPrefix)
}

// Comments are keyed comment:<id> with a comment_moto:<motorcycle>:<id>
// index for per-motorcycle listing.

// CreateComment stores a new comment and its motorcycle index entry.
func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(commentKeyPrefix+c.ID), data); err != nil {
			return fmt.Errorf("set comment: %w", err)
		}
		idxKey := []byte(commentMotoIdxPrefix + c.MotorcycleID + ":" + c.ID)
		if err := txn.Set(idxKey, []byte(c.ID)); err != nil {
			return fmt.Errorf("set comment index: %w", err)
		}
		return nil
	})
}

// GetComment retrieves a comment by ID, tombstones included.
func (s *Store) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(commentKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get comment: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &c)
		})
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComment applies fn to the current comment inside one transaction.
// Badger's conflict detection serializes concurrent updates to the same
// key, so read-modify-write through fn is a compare-and-swap; the caller
// retries on ErrConflict.
func (s *Store) UpdateComment(ctx context.Context, id string, fn func(*models.Comment) error) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(commentKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get comment: %w", err)
		}

		var c models.Comment
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &c)
		})
		if err != nil {
			return fmt.Errorf("unmarshal comment: %w", err)
		}

		if err := fn(&c); err != nil {
			return err
		}

		data, err := json.Marshal(&c)
		if err != nil {
			return fmt.Errorf("marshal comment: %w", err)
		}
		return txn.Set([]byte(commentKeyPrefix+id), data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: concurrent comment update", ErrConflict)
	}
	return err
}

// ListCommentsForMotorcycle returns all comments on one motorcycle,
// tombstones included.
func (s *Store) ListCommentsForMotorcycle(ctx context.Context, motorcycleID string) ([]*models.Comment, error) {
	var ids []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(commentMotoIdxPrefix + motorcycleID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan comment index: %w", err)
	}

	out := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		c, err := s.GetComment(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// CountComments returns the total comment count.
func (s *Store) CountComments(ctx context.Context) (int, error) {
	return s.countPrefix(commentKeyPrefix)
}

// Per-user counters back achievement progression. Keys are
// counter:<user>:<name> holding a decimal count.

// IncrementCounter adds one to a user counter and returns the new value.
func (s *Store) IncrementCounter(ctx context.Context, userID, name string) (int, error) {
	key := []byte(counterKeyPrefix + userID + ":" + name)
	var value int

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get counter: %w", err)
		}
		current := 0
		if err == nil {
			err = item.Value(func(val []byte) error {
				current = parseCount(string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		value = current + 1
		return txn.Set(key, []byte(formatCount(value)))
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// GetCounter returns a user counter, zero when absent.
func (s *Store) GetCounter(ctx context.Context, userID, name string) (int, error) {
	value := 0
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(counterKeyPrefix + userID + ":" + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get counter: %w", err)
		}
		return item.Value(func(val []byte) error {
			value = parseCount(string(val))
			return nil
		})
	})
	return value, err
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
