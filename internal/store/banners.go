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

// PutBanner creates or replaces a banner.
func (s *Store) PutBanner(ctx context.Context, b *models.Banner) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal banner: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(bannerKeyPrefix+b.ID), data)
	})
}

// GetBanner retrieves a banner by ID.
func (s *Store) GetBanner(ctx context.Context, id string) (*models.Banner, error) {
	var b models.Banner

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(bannerKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get banner: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &b)
		})
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBanner removes a banner. Missing banners return ErrNotFound.
func (s *Store) DeleteBanner(ctx context.Context, id string) error {
	key := []byte(bannerKeyPrefix + id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("get banner: %w", err)
		}
		return txn.Delete(key)
	})
}

// ListBanners returns all banners, live or not. Callers filter and order.
func (s *Store) ListBanners(ctx context.Context) ([]*models.Banner, error) {
	var out []*models.Banner

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(bannerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var b models.Banner
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &b)
			})
			if err != nil {
				return fmt.Errorf("unmarshal banner: %w", err)
			}
			out = append(out, &b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
