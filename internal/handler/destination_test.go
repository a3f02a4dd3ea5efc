package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/handler"
)

// mockDestinationServicer is a test double for handler.DestinationServicer.
type mockDestinationServicer struct {
	create          func(ctx context.Context, subject string, dest domain.Destination) (domain.Destination, error)
	getByID         func(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error)
	listByTrip      func(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Destination, error)
	update          func(ctx context.Context, upd domain.DestinationUpdate) (domain.Destination, error)
	delete          func(ctx context.Context, subject string, id uuid.UUID) error
	toggleCompleted func(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error)
}

func (m *mockDestinationServicer) Create(ctx context.Context, subject string, dest domain.Destination) (domain.Destination, error) {
	return m.create(ctx, subject, dest)
}
func (m *mockDestinationServicer) GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, subject, id)
}
func (m *mockDestinationServicer) ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTrip(ctx, subject, tripID)
}
func (m *mockDestinationServicer) Update(ctx context.Context, upd domain.DestinationUpdate) (domain.Destination, error) {
	return m.update(ctx, upd)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	return m.delete(ctx, subject, id)
}
func (m *mockDestinationServicer) ToggleCompleted(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error) {
	return m.toggleCompleted(ctx, subject, id)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

func newDestinationHandler(svc handler.DestinationServicer) http.Handler {
	return handler.Routes(handler.NewServer(nil, svc, nil, nil, nil), stubAuth)
}

func destinationFixture(tripID uuid.UUID) domain.Destination {
	return domain.Destination{
		ID:              uuid.New(),
		TripID:          tripID,
		Name:            "Uffizi Gallery",
		DestinationType: "museum",
		PriorityLevel:   2,
	}
}

func TestCreateDestination_201(t *testing.T) {
	tripID := uuid.New()
	fixture := destinationFixture(tripID)
	var received domain.Destination
	svc := &mockDestinationServicer{
		create: func(_ context.Context, subject string, dest domain.Destination) (domain.Destination, error) {
			assert.Equal(t, testSubject, subject)
			received = dest
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":             "Uffizi Gallery",
		"destination_type": "museum",
		"priority_level":   2,
		"visit_date":       "2026-06-02",
	})

	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/destinations", body)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, tripID, received.TripID, "trip comes from the path, not the body")
	require.NotNil(t, received.VisitDate)
	assert.Equal(t, "2026-06-02", received.VisitDate.Format("2006-01-02"))
}

func TestCreateDestination_404_ForeignTrip(t *testing.T) {
	svc := &mockDestinationServicer{
		create: func(_ context.Context, _ string, _ domain.Destination) (domain.Destination, error) {
			return domain.Destination{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"name": "Uffizi"})
	req := httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/destinations", body)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec.Body))
}

func TestListDestinations_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockDestinationServicer{
		listByTrip: func(_ context.Context, _ string, id uuid.UUID) ([]domain.Destination, error) {
			assert.Equal(t, tripID, id)
			return []domain.Destination{destinationFixture(tripID)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/destinations", nil)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Uffizi Gallery", resp[0]["name"])
}

func TestGetDestination_404_MalformedID(t *testing.T) {
	svc := &mockDestinationServicer{}

	req := httptest.NewRequest(http.MethodGet, "/destinations/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateDestination_200_PartialEnrichment(t *testing.T) {
	fixture := destinationFixture(uuid.New())
	var received domain.DestinationUpdate
	svc := &mockDestinationServicer{
		update: func(_ context.Context, upd domain.DestinationUpdate) (domain.Destination, error) {
			received = upd
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":           "Uffizi (booked)",
		"priority_level": 1,
	})

	req := httptest.NewRequest(http.MethodPut, "/destinations/"+fixture.ID.String(), body)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Uffizi (booked)", received.Name)
	require.NotNil(t, received.PriorityLevel)
	assert.Equal(t, 1, *received.PriorityLevel)
	assert.Nil(t, received.DestinationType, "omitted enrichment arrives as nil")
	assert.Nil(t, received.VisitDate)
}

func TestDeleteDestination_204(t *testing.T) {
	id := uuid.New()
	svc := &mockDestinationServicer{
		delete: func(_ context.Context, _ string, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/destinations/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestToggleDestinationCompleted_200(t *testing.T) {
	fixture := destinationFixture(uuid.New())
	fixture.IsCompleted = true
	svc := &mockDestinationServicer{
		toggleCompleted: func(_ context.Context, _ string, _ uuid.UUID) (domain.Destination, error) {
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/destinations/"+fixture.ID.String()+"/complete", nil)
	rec := httptest.NewRecorder()

	newDestinationHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["is_completed"])
}
