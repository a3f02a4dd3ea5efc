package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPriorityLevel is assigned when a destination is created without an
// explicit priority. Lower values rank higher; 1 is "must-see".
const DefaultPriorityLevel = 3

// Destination is a point of interest scoped to one trip. It has no owner
// column of its own — authorization is always derived transitively through
// the parent trip's owner.
type Destination struct {
	ID              uuid.UUID
	TripID          uuid.UUID
	Name            string
	Description     string
	ImageURL        string
	OrderIndex      int
	DestinationType string
	Address         string
	VisitDate       *time.Time // nil when not scheduled yet
	VisitTime       string     // free-form "HH:MM" style text, empty when unset
	PriceRange      string
	PriorityLevel   int
	IsCompleted     bool
	LocationLat     *float64
	LocationLng     *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DestinationUpdate carries the fields of a destination update request.
// Name, Description, ImageURL, and OrderIndex are full-replace; every
// enrichment field is a pointer with keep-existing-when-nil semantics.
type DestinationUpdate struct {
	ID             uuid.UUID
	OwnerSubjectID string

	Name        string
	Description string
	ImageURL    string
	OrderIndex  int

	DestinationType *string
	Address         *string
	VisitDate       *time.Time
	VisitTime       *string
	PriceRange      *string
	PriorityLevel   *int
	IsCompleted     *bool
	LocationLat     *float64
	LocationLng     *float64
}
