package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
	"github.com/wayfarer-travel/backend/internal/service"
)

// mockProfileRepo is a hand-written test double for repo.ProfileRepo.
type mockProfileRepo struct {
	get    func(ctx context.Context, subject string) (domain.Profile, error)
	upsert func(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

func (m *mockProfileRepo) Get(ctx context.Context, subject string) (domain.Profile, error) {
	return m.get(ctx, subject)
}
func (m *mockProfileRepo) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	return m.upsert(ctx, profile)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

// mockStatsRepo is a hand-written test double for repo.StatsRepo.
type mockStatsRepo struct {
	travelerStats func(ctx context.Context, subject string) (domain.TravelerStats, error)
}

func (m *mockStatsRepo) TravelerStats(ctx context.Context, subject string) (domain.TravelerStats, error) {
	return m.travelerStats(ctx, subject)
}

var _ repo.StatsRepo = (*mockStatsRepo)(nil)

func TestProfileService_Get_PropagatesNotFound(t *testing.T) {
	svc := service.NewProfileService(&mockProfileRepo{
		get: func(_ context.Context, _ string) (domain.Profile, error) {
			return domain.Profile{}, domain.ErrNotFound
		},
	}, &mockStatsRepo{})

	_, err := svc.Get(context.Background(), "auth0|tester")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_Put_Valid(t *testing.T) {
	svc := service.NewProfileService(&mockProfileRepo{
		upsert: func(_ context.Context, p domain.Profile) (domain.Profile, error) {
			return p, nil
		},
	}, &mockStatsRepo{})

	got, err := svc.Put(context.Background(), domain.Profile{
		SubjectID:   "auth0|tester",
		DisplayName: "Frequent Flyer",
		LocationLat: ptr(43.7696),
		LocationLng: ptr(11.2558),
	})

	require.NoError(t, err)
	assert.Equal(t, "Frequent Flyer", got.DisplayName)
}

func TestProfileService_Put_RejectsHalfCoordinate(t *testing.T) {
	// Repo is never reached — a nil upsert field would panic if it were.
	svc := service.NewProfileService(&mockProfileRepo{}, &mockStatsRepo{})

	_, err := svc.Put(context.Background(), domain.Profile{
		SubjectID:   "auth0|tester",
		LocationLat: ptr(43.7696),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileService_Put_RejectsOutOfRangeCoordinates(t *testing.T) {
	svc := service.NewProfileService(&mockProfileRepo{}, &mockStatsRepo{})

	_, err := svc.Put(context.Background(), domain.Profile{
		SubjectID:   "auth0|tester",
		LocationLat: ptr(-91.0),
		LocationLng: ptr(11.2558),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileService_TravelerStats(t *testing.T) {
	svc := service.NewProfileService(&mockProfileRepo{}, &mockStatsRepo{
		travelerStats: func(_ context.Context, _ string) (domain.TravelerStats, error) {
			return domain.TravelerStats{TotalTrips: 7, CountriesVisited: 3}, nil
		},
	})

	got, err := svc.TravelerStats(context.Background(), "auth0|tester")

	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalTrips)
	assert.Equal(t, 3, got.CountriesVisited)
}
