package service

import (
	"context"
	"fmt"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
)

// ProfileService implements business logic for the user profile and the
// cross-trip traveler stats.
type ProfileService struct {
	profiles repo.ProfileRepo
	stats    repo.StatsRepo
}

// NewProfileService constructs a ProfileService backed by the provided repos.
func NewProfileService(profiles repo.ProfileRepo, stats repo.StatsRepo) *ProfileService {
	return &ProfileService{profiles: profiles, stats: stats}
}

// Get returns the subject's profile, or domain.ErrNotFound if they have
// never written one. Profile existence is independent of user existence.
func (s *ProfileService) Get(ctx context.Context, subject string) (domain.Profile, error) {
	result, err := s.profiles.Get(ctx, subject)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return result, nil
}

// Put upserts the subject's profile with full-replace semantics — every
// field is written as received, unlike the partial trip/destination updates.
func (s *ProfileService) Put(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	if err := validateCoordinates(profile.LocationLat, profile.LocationLng); err != nil {
		return domain.Profile{}, err
	}

	result, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Put: %w", err)
	}
	return result, nil
}

// TravelerStats returns the subject's cross-trip totals.
func (s *ProfileService) TravelerStats(ctx context.Context, subject string) (domain.TravelerStats, error) {
	result, err := s.stats.TravelerStats(ctx, subject)
	if err != nil {
		return domain.TravelerStats{}, fmt.Errorf("service.ProfileService.TravelerStats: %w", err)
	}
	return result, nil
}
