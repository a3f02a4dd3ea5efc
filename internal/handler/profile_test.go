package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/handler"
)

// mockProfileServicer is a test double for handler.ProfileServicer.
type mockProfileServicer struct {
	get           func(ctx context.Context, subject string) (domain.Profile, error)
	put           func(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	travelerStats func(ctx context.Context, subject string) (domain.TravelerStats, error)
}

func (m *mockProfileServicer) Get(ctx context.Context, subject string) (domain.Profile, error) {
	return m.get(ctx, subject)
}
func (m *mockProfileServicer) Put(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	return m.put(ctx, profile)
}
func (m *mockProfileServicer) TravelerStats(ctx context.Context, subject string) (domain.TravelerStats, error) {
	return m.travelerStats(ctx, subject)
}

var _ handler.ProfileServicer = (*mockProfileServicer)(nil)

func newProfileHandler(svc handler.ProfileServicer) http.Handler {
	return handler.Routes(handler.NewServer(nil, nil, nil, svc, nil), stubAuth)
}

func TestGetProfile_200(t *testing.T) {
	svc := &mockProfileServicer{
		get: func(_ context.Context, subject string) (domain.Profile, error) {
			assert.Equal(t, testSubject, subject)
			return domain.Profile{SubjectID: subject, DisplayName: "Frequent Flyer"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec := httptest.NewRecorder()

	newProfileHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Frequent Flyer", resp["display_name"])
}

func TestGetProfile_404_NeverWritten(t *testing.T) {
	svc := &mockProfileServicer{
		get: func(_ context.Context, _ string) (domain.Profile, error) {
			return domain.Profile{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec := httptest.NewRecorder()

	newProfileHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec.Body))
}

func TestPutProfile_200(t *testing.T) {
	var received domain.Profile
	svc := &mockProfileServicer{
		put: func(_ context.Context, p domain.Profile) (domain.Profile, error) {
			received = p
			return p, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"display_name": "Frequent Flyer",
		"location":     "Florence, Italy",
		"location_lat": 43.7696,
		"location_lng": 11.2558,
		"travel_style": "slow travel",
	})

	req := httptest.NewRequest(http.MethodPut, "/user/profile", body)
	rec := httptest.NewRecorder()

	newProfileHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testSubject, received.SubjectID, "subject comes from the token, not the body")
	assert.Equal(t, "Frequent Flyer", received.DisplayName)
	require.NotNil(t, received.LocationLat)
	assert.InDelta(t, 43.7696, *received.LocationLat, 1e-9)
}

func TestPutProfile_400_HalfCoordinate(t *testing.T) {
	svc := &mockProfileServicer{
		put: func(_ context.Context, _ domain.Profile) (domain.Profile, error) {
			return domain.Profile{}, fmt.Errorf("%w: location_lat and location_lng must be provided together", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"location_lat": 43.7696})
	req := httptest.NewRequest(http.MethodPut, "/user/profile", body)
	rec := httptest.NewRecorder()

	newProfileHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTravelerStats_200(t *testing.T) {
	svc := &mockProfileServicer{
		travelerStats: func(_ context.Context, _ string) (domain.TravelerStats, error) {
			return domain.TravelerStats{
				TotalTrips:            7,
				FavoriteTrips:         2,
				CountriesVisited:      3,
				TotalDestinations:     20,
				CompletedDestinations: 11,
				TotalPhotos:           42,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/user/profile/stats", nil)
	rec := httptest.NewRecorder()

	newProfileHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 7, resp["total_trips"])
	assert.EqualValues(t, 3, resp["countries_visited"])
	assert.EqualValues(t, 42, resp["total_photos"])
}
