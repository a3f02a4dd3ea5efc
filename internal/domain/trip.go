// Package domain contains the core data types for the Wayfarer application.
// This package has no dependencies beyond google/uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip status values derived from the trip's date range vs the current date.
const (
	TripStatusUpcoming = "upcoming"
	TripStatusOngoing  = "ongoing"
	TripStatusPast     = "past"
)

// Trip is the top-level itinerary container, owned by exactly one subject.
// OwnerSubjectID is immutable after creation; destinations and photos hang
// off a trip and share its lifecycle.
//
// DestinationCount and PhotoCount are read-time aggregates populated by the
// repo on List/Get — they are never written back to the store.
type Trip struct {
	ID             uuid.UUID
	OwnerSubjectID string
	Title          string
	Country        string
	City           string
	StartDate      time.Time
	EndDate        time.Time
	Notes          string
	ImageURL       string
	TripType       string
	Budget         *float64 // nil when no budget is set
	TravelerCount  int
	IsFavorite     bool
	TripRating     *int // nil until the user rates the trip

	DestinationCount int
	PhotoCount       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status classifies the trip relative to now: upcoming before the start
// date, past after the end date, ongoing in between. Comparison is at
// date granularity — a trip ending today is still ongoing.
func (t Trip) Status(now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(t.StartDate.Year(), t.StartDate.Month(), t.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(t.EndDate.Year(), t.EndDate.Month(), t.EndDate.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case today.Before(start):
		return TripStatusUpcoming
	case today.After(end):
		return TripStatusPast
	default:
		return TripStatusOngoing
	}
}

// DurationDays returns the trip length in days, inclusive of both endpoints:
// a trip starting and ending on the same date lasts one day.
func (t Trip) DurationDays() int {
	start := time.Date(t.StartDate.Year(), t.StartDate.Month(), t.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(t.EndDate.Year(), t.EndDate.Month(), t.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// TripUpdate carries the fields of a trip update request.
//
// Core fields (Title through ImageURL) use full-replace semantics: whatever
// the client sent is written as-is. Enrichment fields are pointers with
// keep-existing-when-nil semantics, making the partial/full distinction a
// type-level contract instead of a runtime convention.
type TripUpdate struct {
	ID             uuid.UUID
	OwnerSubjectID string

	Title     string
	Country   string
	City      string
	StartDate time.Time
	EndDate   time.Time
	Notes     string
	ImageURL  string

	TripType      *string
	Budget        *float64
	TravelerCount *int
	IsFavorite    *bool
	TripRating    *int
}

// TripStats aggregates a single trip's itinerary progress.
type TripStats struct {
	TotalDestinations     int
	CompletedDestinations int
	MustSeeDestinations   int // destinations with priority_level 1
	TotalPhotos           int
	ProgressPercentage    int // round(100 * completed / total), 0 when total is 0
}
