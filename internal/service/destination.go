package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
)

// DestinationService implements business logic for Destination operations.
// It holds the trips repo as well because listing destinations must
// distinguish "empty trip" from "trip that does not exist (for you)".
type DestinationService struct {
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repos.
func NewDestinationService(trips repo.TripRepo, dests repo.DestinationRepo) *DestinationService {
	return &DestinationService{trips: trips, dests: dests}
}

// Create validates and persists a new destination under one of subject's
// trips. A zero priority falls back to the default before validation.
// Returns domain.ErrNotFound when the trip is absent or not owned by subject.
func (s *DestinationService) Create(ctx context.Context, subject string, dest domain.Destination) (domain.Destination, error) {
	if dest.PriorityLevel == 0 {
		dest.PriorityLevel = domain.DefaultPriorityLevel
	}
	if err := validateDestination(dest.Name, dest.PriorityLevel, dest.LocationLat, dest.LocationLng); err != nil {
		return domain.Destination{}, err
	}

	result, err := s.dests.Create(ctx, subject, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single destination whose parent trip is owned by subject.
func (s *DestinationService) GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error) {
	result, err := s.dests.GetByID(ctx, subject, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's destinations in itinerary display order.
// The parent trip is resolved first so a missing or foreign trip yields
// domain.ErrNotFound rather than an empty list.
func (s *DestinationService) ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Destination, error) {
	if _, err := s.trips.GetByID(ctx, subject, tripID); err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTrip: %w", err)
	}
	dests, err := s.dests.ListByTrip(ctx, subject, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTrip: %w", err)
	}
	if dests == nil {
		return []domain.Destination{}, nil
	}
	return dests, nil
}

// Update validates and applies a destination update. Enrichment fields left
// nil keep their stored values; set fields are validated before writing.
func (s *DestinationService) Update(ctx context.Context, upd domain.DestinationUpdate) (domain.Destination, error) {
	if strings.TrimSpace(upd.Name) == "" {
		return domain.Destination{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if upd.PriorityLevel != nil && (*upd.PriorityLevel < 1 || *upd.PriorityLevel > 5) {
		return domain.Destination{}, fmt.Errorf("%w: priority_level must be between 1 and 5", domain.ErrValidation)
	}
	if err := validateCoordinates(upd.LocationLat, upd.LocationLng); err != nil {
		return domain.Destination{}, err
	}

	result, err := s.dests.Update(ctx, upd)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination whose parent trip is owned by subject.
func (s *DestinationService) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	if err := s.dests.Delete(ctx, subject, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// ToggleCompleted flips the destination's completion flag.
func (s *DestinationService) ToggleCompleted(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error) {
	result, err := s.dests.ToggleCompleted(ctx, subject, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.ToggleCompleted: %w", err)
	}
	return result, nil
}

// validateDestination enforces the rules common to Create and Update.
func validateDestination(name string, priority int, lat, lng *float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if priority < 1 || priority > 5 {
		return fmt.Errorf("%w: priority_level must be between 1 and 5", domain.ErrValidation)
	}
	return validateCoordinates(lat, lng)
}

// validateCoordinates checks lat/lng ranges when present. Passing only one of
// the pair is rejected — a half coordinate cannot be placed on a map.
func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return fmt.Errorf("%w: location_lat and location_lng must be provided together", domain.ErrValidation)
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		return fmt.Errorf("%w: location_lat must be between -90 and 90", domain.ErrValidation)
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		return fmt.Errorf("%w: location_lng must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}
