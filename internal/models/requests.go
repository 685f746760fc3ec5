// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package models

// Request payloads for the API surface. Validation tags drive the
// field-level 422 responses.

// RegisterRequest creates a password account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// LoginRequest authenticates a password account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ExternalProfileRequest carries a verified external identity claim. The
// session token proves the upstream flow completed.
type ExternalProfileRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Picture      string `json:"picture" validate:"omitempty,url"`
	SessionToken string `json:"session_token" validate:"required"`
}

// RateRequest submits or updates a star rating.
type RateRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"omitempty,max=500"`
}

// CommentRequest posts a comment or a reply.
type CommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=1000"`
	ParentCommentID string `json:"parent_comment_id" validate:"omitempty,uuid4"`
}

// BannerRequest creates or updates a banner.
type BannerRequest struct {
	Message  string  `json:"message" validate:"required,min=1,max=500"`
	Priority int     `json:"priority" validate:"min=0,max=100"`
	Active   bool    `json:"active"`
	StartsAt *string `json:"starts_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndsAt   *string `json:"ends_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// GarageItemRequest adds or updates a garage entry.
type GarageItemRequest struct {
	MotorcycleID  string   `json:"motorcycle_id" validate:"required"`
	Status        string   `json:"status" validate:"required"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,min=0"`
	MileageKm     *float64 `json:"mileage_km" validate:"omitempty,min=0"`
	PurchaseDate  *string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string   `json:"notes" validate:"omitempty,max=1000"`
	Public        bool     `json:"public"`
}

// GroupRequest creates a rider group.
type GroupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Type        string `json:"type" validate:"required"`
	Location    string `json:"location" validate:"omitempty,max=200"`
	MaxMembers  int    `json:"max_members" validate:"omitempty,min=2,max=10000"`
	Public      bool   `json:"public"`
}

// UserRequestCreate submits a user request for admin review.
type UserRequestCreate struct {
	Type        string `json:"type" validate:"required,max=50"`
	Priority    string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

// RequestStatusUpdate moves a user request through its workflow.
type RequestStatusUpdate struct {
	Status        string `json:"status" validate:"required"`
	AdminResponse string `json:"admin_response" validate:"omitempty,max=2000"`
}

// CompareRequest selects motorcycles for side-by-side comparison.
type CompareRequest struct {
	IDs []string `json:"ids" validate:"required,min=2,max=4,dive,required"`
}

// AnalyticsEventRequest records a best-effort usage event.
type AnalyticsEventRequest struct {
	Kind    string            `json:"kind" validate:"required"`
	Payload map[string]string `json:"payload" validate:"omitempty,max=20"`
}
