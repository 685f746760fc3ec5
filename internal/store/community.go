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

// Garage items are keyed garage:<user>:<id> so a user's garage is one
// prefix scan.

// PutGarageItem creates or replaces a garage entry.
func (s *Store) PutGarageItem(ctx context.Context, g *models.GarageItem) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal garage item: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(garageKeyPrefix+g.UserID+":"+g.ID), data)
	})
}

// GetGarageItem retrieves one entry from a user's garage.
func (s *Store) GetGarageItem(ctx context.Context, userID, id string) (*models.GarageItem, error) {
	var g models.GarageItem

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(garageKeyPrefix + userID + ":" + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get garage item: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGarageItem removes an entry. Missing entries return ErrNotFound.
func (s *Store) DeleteGarageItem(ctx context.Context, userID, id string) error {
	key := []byte(garageKeyPrefix + userID + ":" + id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get garage item: %w", err)
		}
		return txn.Delete(key)
	})
}

// ListGarageItems returns a user's garage.
func (s *Store) ListGarageItems(ctx context.Context, userID string) ([]*models.GarageItem, error) {
	var out []*models.GarageItem

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(garageKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g models.GarageItem
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			})
			if err != nil {
				return fmt.Errorf("unmarshal garage item: %w", err)
			}
			out = append(out, &g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Rider groups are keyed group:<id>. The member set lives inside the
// document; membership changes go through UpdateGroup so they serialize.

// CreateGroup stores a new rider group.
func (s *Store) CreateGroup(ctx context.Context, g *models.RiderGroup) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal group: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(groupKeyPrefix+g.ID), data)
	})
}

// GetGroup retrieves a rider group by ID.
func (s *Store) GetGroup(ctx context.Context, id string) (*models.RiderGroup, error) {
	var g models.RiderGroup

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(groupKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGroup applies fn to the current group inside one transaction.
// Concurrent joins to the same group serialize through Badger's conflict
// detection.
func (s *Store) UpdateGroup(ctx context.Context, id string, fn func(*models.RiderGroup) error) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(groupKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get group: %w", err)
		}

		var g models.RiderGroup
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
		if err != nil {
			return fmt.Errorf("unmarshal group: %w", err)
		}

		if err := fn(&g); err != nil {
			return err
		}

		data, err := json.Marshal(&g)
		if err != nil {
			return fmt.Errorf("marshal group: %w", err)
		}
		return txn.Set([]byte(groupKeyPrefix+id), data)
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: concurrent group update", ErrConflict)
	}
	return err
}

// ListGroups returns all rider groups.
func (s *Store) ListGroups(ctx context.Context) ([]*models.RiderGroup, error) {
	var out []*models.RiderGroup

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(groupKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var g models.RiderGroup
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			})
			if err != nil {
				return fmt.Errorf("unmarshal group: %w", err)
			}
			out = append(out, &g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Achievement definitions are keyed achievement:<id>; per-user progress is
// keyed user_ach:<user>:<achievement>.

// PutAchievement stores an achievement definition. Called by seeding.
func (s *Store) PutAchievement(ctx context.Context, a *models.Achievement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal achievement: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(achievementKeyPrefix+a.ID), data)
	})
}

// ListAchievements returns all achievement definitions.
func (s *Store) ListAchievements(ctx context.Context) ([]*models.Achievement, error) {
	var out []*models.Achievement

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(achievementKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var a models.Achievement
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			})
			if err != nil {
				return fmt.Errorf("unmarshal achievement: %w", err)
			}
			out = append(out, &a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PutUserAchievement records or updates a user's progress row.
func (s *Store) PutUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	data, err := json.Marshal(ua)
	if err != nil {
		return fmt.Errorf("marshal user achievement: %w", err)
	}
	key := []byte(userAchKeyPrefix + ua.UserID + ":" + ua.AchievementID)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetUserAchievement returns a user's progress on one achievement.
func (s *Store) GetUserAchievement(ctx context.Context, userID, achievementID string) (*models.UserAchievement, error) {
	var ua models.UserAchievement

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userAchKeyPrefix + userID + ":" + achievementID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user achievement: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ua)
		})
	})
	if err != nil {
		return nil, err
	}
	return &ua, nil
}

// ListUserAchievements returns all of a user's progress rows.
func (s *Store) ListUserAchievements(ctx context.Context, userID string) ([]*models.UserAchievement, error) {
	var out []*models.UserAchievement

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userAchKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var ua models.UserAchievement
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ua)
			})
			if err != nil {
				return fmt.Errorf("unmarshal user achievement: %w", err)
			}
			out = append(out, &ua)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// User requests are keyed request:<id> with a request_user:<user>:<id>
// index for per-user listing.

// CreateUserRequest stores a new request and its user index entry.
func (s *Store) CreateUserRequest(ctx context.Context, r *models.UserRequest) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(requestKeyPrefix+r.ID), data); err != nil {
			return fmt.Errorf("set request: %w", err)
		}
		idxKey := []byte(requestUserIdxPrefix + r.UserID + ":" + r.ID)
		if err := txn.Set(idxKey, []byte(r.ID)); err != nil {
			return fmt.Errorf("set request index: %w", err)
		}
		return nil
	})
}

// GetUserRequest retrieves a request by ID.
func (s *Store) GetUserRequest(ctx context.Context, id string) (*models.UserRequest, error) {
	var r models.UserRequest

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(requestKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get request: %w", err)
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

// UpdateUserRequest replaces an existing request record.
func (s *Store) UpdateUserRequest(ctx context.Context, r *models.UserRequest) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(requestKeyPrefix + r.ID)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		return txn.Set(key, data)
	})
}

// ListUserRequests returns all requests, or one user's when userID is
// non-empty.
func (s *Store) ListUserRequests(ctx context.Context, userID string) ([]*models.UserRequest, error) {
	if userID == "" {
		return s.listAllRequests()
	}

	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(requestUserIdxPrefix + userID + ":")
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
		return nil, fmt.Errorf("scan request index: %w", err)
	}

	out := make([]*models.UserRequest, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetUserRequest(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) listAllRequests() ([]*models.UserRequest, error) {
	var out []*models.UserRequest

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(requestKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r models.UserRequest
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return fmt.Errorf("unmarshal request: %w", err)
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
