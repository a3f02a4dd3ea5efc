// Package handler implements the HTTP handlers for the Wayfarer API.
// Handlers decode JSON requests, call the service layer with the identity
// taken from the request context, and map domain errors to HTTP statuses.
// Methods are split into domain-specific files (trip.go, photo.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, subject string) ([]domain.Trip, error)
	Update(ctx context.Context, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, subject string, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error)
	SetRating(ctx context.Context, subject string, id uuid.UUID, rating int) (domain.Trip, error)
	Stats(ctx context.Context, subject string, id uuid.UUID) (domain.TripStats, error)
}

// DestinationServicer defines the business operations the destination
// handlers depend on.
type DestinationServicer interface {
	Create(ctx context.Context, subject string, dest domain.Destination) (domain.Destination, error)
	GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error)
	ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Destination, error)
	Update(ctx context.Context, upd domain.DestinationUpdate) (domain.Destination, error)
	Delete(ctx context.Context, subject string, id uuid.UUID) error
	ToggleCompleted(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error)
}

// PhotoServicer defines the business operations the photo handlers depend on.
type PhotoServicer interface {
	Create(ctx context.Context, subject string, photo domain.Photo) (domain.Photo, error)
	ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Photo, error)
	Delete(ctx context.Context, subject string, id uuid.UUID) error
}

// ProfileServicer defines the business operations the profile handlers depend on.
type ProfileServicer interface {
	Get(ctx context.Context, subject string) (domain.Profile, error)
	Put(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	TravelerStats(ctx context.Context, subject string) (domain.TravelerStats, error)
}

// ExportServicer defines the business operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, subject string) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips        TripServicer
	destinations DestinationServicer
	photos       PhotoServicer
	profile      ProfileServicer
	export       ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, destinations DestinationServicer, photos PhotoServicer, profile ProfileServicer, export ExportServicer) *Server {
	return &Server{
		trips:        trips,
		destinations: destinations,
		photos:       photos,
		profile:      profile,
		export:       export,
	}
}
