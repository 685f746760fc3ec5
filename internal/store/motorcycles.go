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

// PutMotorcycle creates or replaces a motorcycle record.
func (s *Store) PutMotorcycle(ctx context.Context, m *models.Motorcycle) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal motorcycle: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(motorcycleKeyPrefix+m.ID), data)
	})
}

// GetMotorcycle retrieves a motorcycle by ID. Legacy documents are
// normalized on read.
func (s *Store) GetMotorcycle(ctx context.Context, id string) (*models.Motorcycle, error) {
	var m models.Motorcycle

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(motorcycleKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get motorcycle: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
	})
	if err != nil {
		return nil, err
	}

	m.Normalize()
	return &m, nil
}

// ListMotorcycles scans the full catalog. The query engine filters and
// sorts in memory; the corpus is bounded and the scan is the single source
// of truth for listings and stats alike.
func (s *Store) ListMotorcycles(ctx context.Context) ([]*models.Motorcycle, error) {
	var out []*models.Motorcycle

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(motorcycleKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var m models.Motorcycle
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			})
			if err != nil {
				return fmt.Errorf("unmarshal motorcycle: %w", err)
			}
			m.Normalize()
			out = append(out, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListMotorcyclesByManufacturer returns the records for one manufacturer.
// Used by the update scheduler's per-manufacturer workers.
func (s *Store) ListMotorcyclesByManufacturer(ctx context.Context, manufacturer string) ([]*models.Motorcycle, error) {
	all, err := s.ListMotorcycles(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.Motorcycle
	for _, m := range all {
		if m.Manufacturer == manufacturer {
			out = append(out, m)
		}
	}
	return out, nil
}

// CountMotorcycles returns the catalog size without loading values.
func (s *Store) CountMotorcycles(ctx context.Context) (int, error) {
	return s.countPrefix(motorcycleKeyPrefix)
}

// UpdateMotorcycle applies fn to the current record inside one
// transaction. fn returning an error aborts without writing. Callers use
// this for aggregate recomputation and scheduler writes so concurrent
// updates to the same record serialize through Badger.
func (s *Store) UpdateMotorcycle(ctx context.Context, id string, fn func(*models.Motorcycle) error) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(motorcycleKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get motorcycle: %w", err)
		}

		var m models.Motorcycle
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &m)
		})
		if err != nil {
			return fmt.Errorf("unmarshal motorcycle: %w", err)
		}
		m.Normalize()

		if err := fn(&m); err != nil {
			return err
		}

		data, err := json.Marshal(&m)
		if err != nil {
			return fmt.Errorf("marshal motorcycle: %w", err)
		}
		return txn.Set([]byte(motorcycleKeyPrefix+id), data)
	})
}

// countPrefix counts keys under a prefix without prefetching values.
func (s *Store) countPrefix(prefix string) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
