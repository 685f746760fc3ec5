// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package interaction

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/store"
)

// AddGarageItem creates a garage entry for the caller.
func (s *Service) AddGarageItem(ctx context.Context, userID string, req *models.GarageItemRequest) (*models.GarageItem, error) {
	if !models.IsValidGarageStatus(req.Status) {
		return nil, invalidInput("status", "unknown garage status")
	}
	if _, err := s.store.GetMotorcycle(ctx, req.MotorcycleID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.GarageItem{
		ID:            uuid.New().String(),
		UserID:        userID,
		MotorcycleID:  req.MotorcycleID,
		Status:        req.Status,
		PurchasePrice: req.PurchasePrice,
		MileageKm:     req.MileageKm,
		Notes:         req.Notes,
		Public:        req.Public,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.PurchaseDate != nil {
		d, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return nil, invalidInput("purchase_date", "must be YYYY-MM-DD")
		}
		item.PurchaseDate = &d
	}

	if err := s.store.PutGarageItem(ctx, item); err != nil {
		return nil, err
	}

	s.bumpCounter(ctx, userID, models.CounterGarageItems)
	return item, nil
}

// UpdateGarageItem rewrites the mutable fields of an existing entry.
func (s *Service) UpdateGarageItem(ctx context.Context, userID, id string, req *models.GarageItemRequest) (*models.GarageItem, error) {
	if !models.IsValidGarageStatus(req.Status) {
		return nil, invalidInput("status", "unknown garage status")
	}

	item, err := s.store.GetGarageItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	item.Status = req.Status
	item.PurchasePrice = req.PurchasePrice
	item.MileageKm = req.MileageKm
	item.Notes = req.Notes
	item.Public = req.Public
	item.UpdatedAt = time.Now()
	if req.PurchaseDate != nil {
		d, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return nil, invalidInput("purchase_date", "must be YYYY-MM-DD")
		}
		item.PurchaseDate = &d
	}

	if err := s.store.PutGarageItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveGarageItem deletes one of the caller's entries.
func (s *Service) RemoveGarageItem(ctx context.Context, userID, id string) error {
	return s.store.DeleteGarageItem(ctx, userID, id)
}

// GarageView is a garage entry joined with its motorcycle.
type GarageView struct {
	models.GarageItem
	Motorcycle *models.Motorcycle `json:"motorcycle,omitempty"`
}

// ListGarage returns a user's garage newest-first. With publicOnly true,
// private entries are withheld; used when viewing another rider's garage.
func (s *Service) ListGarage(ctx context.Context, userID string, publicOnly bool) ([]GarageView, error) {
	items, err := s.store.ListGarageItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	out := make([]GarageView, 0, len(items))
	for _, item := range items {
		if publicOnly && !item.Public {
			continue
		}
		v := GarageView{GarageItem: *item}
		if m, err := s.store.GetMotorcycle(ctx, item.MotorcycleID); err == nil {
			v.Motorcycle = m
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
