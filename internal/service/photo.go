package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
)

// PhotoService implements business logic for Photo operations.
type PhotoService struct {
	trips  repo.TripRepo
	photos repo.PhotoRepo
}

// NewPhotoService constructs a PhotoService backed by the provided repos.
func NewPhotoService(trips repo.TripRepo, photos repo.PhotoRepo) *PhotoService {
	return &PhotoService{trips: trips, photos: photos}
}

// Create validates and persists a new photo under one of subject's trips.
//
// The repo insert is atomic over trip ownership and destination membership,
// so a failed insert is ambiguous. The trip is re-resolved on that path only
// to pick the right error: trip missing → domain.ErrNotFound, trip fine →
// the referenced destination is not on this trip → domain.ErrValidation.
func (s *PhotoService) Create(ctx context.Context, subject string, photo domain.Photo) (domain.Photo, error) {
	if strings.TrimSpace(photo.ImageURL) == "" {
		return domain.Photo{}, fmt.Errorf("%w: image_url is required", domain.ErrValidation)
	}

	result, err := s.photos.Create(ctx, subject, photo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && photo.DestinationID != nil {
			if _, tripErr := s.trips.GetByID(ctx, subject, photo.TripID); tripErr == nil {
				return domain.Photo{}, fmt.Errorf("%w: destination does not belong to this trip", domain.ErrValidation)
			}
		}
		return domain.Photo{}, fmt.Errorf("service.PhotoService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's photos newest first. The parent trip is
// resolved first so a missing or foreign trip yields domain.ErrNotFound
// rather than an empty list.
func (s *PhotoService) ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Photo, error) {
	if _, err := s.trips.GetByID(ctx, subject, tripID); err != nil {
		return nil, fmt.Errorf("service.PhotoService.ListByTrip: %w", err)
	}
	photos, err := s.photos.ListByTrip(ctx, subject, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PhotoService.ListByTrip: %w", err)
	}
	if photos == nil {
		return []domain.Photo{}, nil
	}
	return photos, nil
}

// Delete removes a photo whose parent trip is owned by subject.
func (s *PhotoService) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	if err := s.photos.Delete(ctx, subject, id); err != nil {
		return fmt.Errorf("service.PhotoService.Delete: %w", err)
	}
	return nil
}
