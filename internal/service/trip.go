// Package service contains the business logic for the Wayfarer API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
)

// validTripTypes is the accepted trip_type vocabulary. The stored default is
// "vacation"; anything outside this set is rejected rather than passed
// through to the store.
var validTripTypes = map[string]bool{
	"vacation":  true,
	"business":  true,
	"adventure": true,
	"family":    true,
	"romantic":  true,
	"roadtrip":  true,
	"other":     true,
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip for its OwnerSubjectID.
// Zero-value trip_type and traveler_count fall back to their defaults
// ("vacation", 1) before validation.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.TripType == "" {
		trip.TripType = "vacation"
	}
	if trip.TravelerCount == 0 {
		trip.TravelerCount = 1
	}
	if err := validateTripCore(trip.Title, trip.StartDate, trip.EndDate); err != nil {
		return domain.Trip{}, err
	}
	if err := validateTripEnrichment(trip.TripType, trip.Budget, trip.TravelerCount, trip.TripRating); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by subject.
func (s *TripService) GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, subject, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips owned by subject, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, subject string) ([]domain.Trip, error) {
	trips, err := s.repo.ListByOwner(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and applies a trip update. Enrichment fields left nil in
// upd keep their stored values; set fields are validated before writing.
func (s *TripService) Update(ctx context.Context, upd domain.TripUpdate) (domain.Trip, error) {
	if err := validateTripCore(upd.Title, upd.StartDate, upd.EndDate); err != nil {
		return domain.Trip{}, err
	}
	if upd.TripType != nil && !validTripTypes[*upd.TripType] {
		return domain.Trip{}, fmt.Errorf("%w: unknown trip_type %q", domain.ErrValidation, *upd.TripType)
	}
	if upd.Budget != nil && *upd.Budget < 0 {
		return domain.Trip{}, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if upd.TravelerCount != nil && *upd.TravelerCount < 1 {
		return domain.Trip{}, fmt.Errorf("%w: traveler_count must be at least 1", domain.ErrValidation)
	}
	if upd.TripRating != nil && (*upd.TripRating < 1 || *upd.TripRating > 5) {
		return domain.Trip{}, fmt.Errorf("%w: trip_rating must be between 1 and 5", domain.ErrValidation)
	}

	result, err := s.repo.Update(ctx, upd)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip owned by subject, cascading to its destinations and photos.
func (s *TripService) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, subject, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ToggleFavorite flips the trip's favorite flag and returns the updated trip.
func (s *TripService) ToggleFavorite(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.ToggleFavorite(ctx, subject, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.ToggleFavorite: %w", err)
	}
	return result, nil
}

// SetRating validates the rating range and stores it.
// Ratings outside [1,5] are rejected with domain.ErrValidation.
func (s *TripService) SetRating(ctx context.Context, subject string, id uuid.UUID, rating int) (domain.Trip, error) {
	if rating < 1 || rating > 5 {
		return domain.Trip{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	result, err := s.repo.SetRating(ctx, subject, id, rating)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetRating: %w", err)
	}
	return result, nil
}

// Stats returns the itinerary aggregates for one trip, with the progress
// percentage computed here. A trip with zero destinations reports 0 percent.
func (s *TripService) Stats(ctx context.Context, subject string, id uuid.UUID) (domain.TripStats, error) {
	stats, err := s.repo.Stats(ctx, subject, id)
	if err != nil {
		return domain.TripStats{}, fmt.Errorf("service.TripService.Stats: %w", err)
	}
	if stats.TotalDestinations > 0 {
		stats.ProgressPercentage = int(math.Round(
			100 * float64(stats.CompletedDestinations) / float64(stats.TotalDestinations)))
	}
	return stats, nil
}

// validateTripCore enforces the rules common to Create and Update:
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - EndDate must not be before StartDate (same-day trips are valid).
func validateTripCore(title string, start, end time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// validateTripEnrichment enforces the rules on the optional trip fields.
func validateTripEnrichment(tripType string, budget *float64, travelerCount int, rating *int) error {
	if !validTripTypes[tripType] {
		return fmt.Errorf("%w: unknown trip_type %q", domain.ErrValidation, tripType)
	}
	if budget != nil && *budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if travelerCount < 1 {
		return fmt.Errorf("%w: traveler_count must be at least 1", domain.ErrValidation)
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return fmt.Errorf("%w: trip_rating must be between 1 and 5", domain.ErrValidation)
	}
	return nil
}
