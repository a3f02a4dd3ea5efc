package service

import (
	"context"
	"fmt"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
)

// ExportService assembles a flat export of a subject's trips and destinations.
type ExportService struct {
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, dests repo.DestinationRepo) *ExportService {
	return &ExportService{trips: trips, dests: dests}
}

// Export returns one ExportRow per destination across all of subject's trips,
// trips ordered most recent first, destinations in itinerary display order.
// Trips with no destinations contribute one row with empty destination fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, subject string) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListByOwner(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, t := range trips {
		dests, err := s.dests.ListByTrip(ctx, subject, t.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: trip %s: %w", t.ID, err)
		}

		if len(dests) == 0 {
			rows = append(rows, exportRowFor(t, nil))
			continue
		}
		for i := range dests {
			rows = append(rows, exportRowFor(t, &dests[i]))
		}
	}
	return rows, nil
}

// exportRowFor builds one flat row. dest may be nil for destination-less trips.
func exportRowFor(t domain.Trip, dest *domain.Destination) domain.ExportRow {
	row := domain.ExportRow{
		TripID:        t.ID.String(),
		TripTitle:     t.Title,
		TripCountry:   t.Country,
		TripCity:      t.City,
		TripStartDate: t.StartDate.Format("2006-01-02"),
		TripEndDate:   t.EndDate.Format("2006-01-02"),
	}
	if dest == nil {
		return row
	}

	row.DestinationName = dest.Name
	row.DestinationType = dest.DestinationType
	row.Address = dest.Address
	row.PriorityLevel = dest.PriorityLevel
	row.Completed = dest.IsCompleted
	if dest.VisitDate != nil {
		row.VisitDate = dest.VisitDate.Format("2006-01-02")
	}
	return row
}
