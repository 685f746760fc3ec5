// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package models

import "time"

// Garage item status constants.
const (
	GarageOwned           = "Owned"
	GarageWishlist        = "Wishlist"
	GaragePreviouslyOwned = "PreviouslyOwned"
	GarageTestRidden      = "TestRidden"
)

// IsValidGarageStatus checks whether a garage status is recognized.
func IsValidGarageStatus(status string) bool {
	switch status {
	case GarageOwned, GarageWishlist, GaragePreviouslyOwned, GarageTestRidden:
		return true
	default:
		return false
	}
}

// GarageItem is one entry in a user's virtual garage.
type GarageItem struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	MotorcycleID  string     `json:"motorcycle_id"`
	Status        string     `json:"status"`
	PurchasePrice *float64   `json:"purchase_price,omitempty"`
	MileageKm     *float64   `json:"mileage_km,omitempty"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Public        bool       `json:"public"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Rider group type constants.
const (
	GroupGeneral     = "General"
	GroupLocation    = "Location"
	GroupBrand       = "Brand"
	GroupRidingStyle = "RidingStyle"
)

// IsValidGroupType checks whether a group type is recognized.
func IsValidGroupType(t string) bool {
	switch t {
	case GroupGeneral, GroupLocation, GroupBrand, GroupRidingStyle:
		return true
	default:
		return false
	}
}

// Group member role constants.
const (
	MemberCreator = "Creator"
	MemberAdmin   = "Admin"
	MemberMember  = "Member"
)

// GroupMember is one membership entry.
type GroupMember struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// RiderGroup is a community of riders. The creator is always present in
// the member set with role Creator.
type RiderGroup struct {
	ID          string        `json:"id"`
	CreatorID   string        `json:"creator_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Type        string        `json:"type"`
	Location    string        `json:"location,omitempty"`
	MaxMembers  int           `json:"max_members,omitempty"` // 0 = unlimited
	Public      bool          `json:"public"`
	Members     []GroupMember `json:"members"`
	CreatedAt   time.Time     `json:"created_at"`
}

// MemberRole returns the role of userID in the group, or "" if absent.
func (g *RiderGroup) MemberRole(userID string) string {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m.Role
		}
	}
	return ""
}

// User request status constants.
const (
	RequestPending    = "Pending"
	RequestInProgress = "InProgress"
	RequestResolved   = "Resolved"
	RequestRejected   = "Rejected"
)

// IsValidRequestStatus checks whether a request status is recognized.
func IsValidRequestStatus(status string) bool {
	switch status {
	case RequestPending, RequestInProgress, RequestResolved, RequestRejected:
		return true
	default:
		return false
	}
}

// UserRequest is a user-submitted request (data correction, new model,
// feature) reviewed by admins.
type UserRequest struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Priority      string    `json:"priority,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	AdminResponse string    `json:"admin_response,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
