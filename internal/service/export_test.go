package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/service"
)

func TestExportService_OneRowPerDestination(t *testing.T) {
	tripWithDests := domain.Trip{
		ID:        uuid.New(),
		Title:     "Tuscany in June",
		Country:   "Italy",
		City:      "Florence",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	emptyTrip := domain.Trip{
		ID:        uuid.New(),
		Title:     "Kyoto someday",
		Country:   "Japan",
		StartDate: time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2027, 4, 10, 0, 0, 0, 0, time.UTC),
	}

	june2 := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	dests := map[uuid.UUID][]domain.Destination{
		tripWithDests.ID: {
			{TripID: tripWithDests.ID, Name: "Duomo", DestinationType: "landmark",
				PriorityLevel: 1, IsCompleted: true, VisitDate: &june2},
			{TripID: tripWithDests.ID, Name: "Uffizi", DestinationType: "museum",
				PriorityLevel: 2},
		},
	}

	svc := service.NewExportService(
		&mockTripRepo{
			listByOwner: func(_ context.Context, _ string) ([]domain.Trip, error) {
				return []domain.Trip{tripWithDests, emptyTrip}, nil
			},
		},
		&mockDestinationRepo{
			listByTrip: func(_ context.Context, _ string, tripID uuid.UUID) ([]domain.Destination, error) {
				return dests[tripID], nil
			},
		},
	)

	rows, err := svc.Export(context.Background(), "auth0|exporter")

	require.NoError(t, err)
	require.Len(t, rows, 3, "two destination rows plus one row for the empty trip")

	assert.Equal(t, "Duomo", rows[0].DestinationName)
	assert.Equal(t, "2026-06-02", rows[0].VisitDate)
	assert.True(t, rows[0].Completed)
	assert.Equal(t, "Tuscany in June", rows[0].TripTitle)
	assert.Equal(t, "2026-06-01", rows[0].TripStartDate)

	assert.Equal(t, "Uffizi", rows[1].DestinationName)
	assert.Empty(t, rows[1].VisitDate, "unscheduled destinations export an empty date")

	// The destination-less trip still shows up, with zero destination fields.
	assert.Equal(t, "Kyoto someday", rows[2].TripTitle)
	assert.Empty(t, rows[2].DestinationName)
	assert.Zero(t, rows[2].PriorityLevel)
}

func TestExportService_NoTrips(t *testing.T) {
	svc := service.NewExportService(
		&mockTripRepo{
			listByOwner: func(_ context.Context, _ string) ([]domain.Trip, error) {
				return nil, nil
			},
		},
		&mockDestinationRepo{},
	)

	rows, err := svc.Export(context.Background(), "auth0|exporter")

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
