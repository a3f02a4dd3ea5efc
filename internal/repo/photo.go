package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// PhotoRepo defines the persistence operations for Photos.
// Like destinations, photos carry no owner column — authorization is derived
// through the parent trip in the same statement as the read or mutation.
type PhotoRepo interface {
	// Create inserts a photo under a trip owned by subject and returns the
	// persisted record with the server-assigned uploaded_at. When the photo
	// references a destination, that destination must belong to the same
	// trip; a violated ownership or membership condition yields
	// domain.ErrNotFound (the service refines the reason).
	Create(ctx context.Context, subject string, photo domain.Photo) (domain.Photo, error)

	// ListByTrip returns a trip's photos newest upload first.
	ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Photo, error)

	// Delete removes one photo whose parent trip is owned by subject.
	Delete(ctx context.Context, subject string, id uuid.UUID) error
}

// pgPhotoRepo is the Postgres implementation of PhotoRepo.
type pgPhotoRepo struct {
	db db
}

// NewPhotoRepo constructs a PhotoRepo backed by the provided db connection.
func NewPhotoRepo(db db) PhotoRepo {
	return &pgPhotoRepo{db: db}
}

// Create inserts via INSERT ... SELECT over trips so trip ownership and
// destination membership are checked in the same atomic statement as the
// insert. Zero rows selected means zero rows inserted.
func (r *pgPhotoRepo) Create(ctx context.Context, subject string, photo domain.Photo) (domain.Photo, error) {
	const q = `
		INSERT INTO photos (trip_id, destination_id, image_url, caption)
		SELECT t.id, @destination_id, @image_url, @caption
		FROM trips t
		WHERE t.id = @trip_id
		  AND t.owner_subject_id = @owner
		  AND (@destination_id::uuid IS NULL OR EXISTS (
			SELECT 1 FROM destinations d
			WHERE d.id = @destination_id AND d.trip_id = t.id))
		RETURNING id, trip_id, destination_id, image_url, caption, uploaded_at`

	args := pgx.NamedArgs{
		"trip_id":        photo.TripID,
		"owner":          subject,
		"destination_id": photo.DestinationID, // nil becomes NULL
		"image_url":      photo.ImageURL,
		"caption":        photo.Caption,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPhoto(row)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("repo.PhotoRepo.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns photos ordered by upload time descending.
func (r *pgPhotoRepo) ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Photo, error) {
	const q = `
		SELECT p.id, p.trip_id, p.destination_id, p.image_url, p.caption, p.uploaded_at
		FROM photos p
		JOIN trips t ON t.id = p.trip_id
		WHERE p.trip_id = @trip_id AND t.owner_subject_id = @owner
		ORDER BY p.uploaded_at DESC, p.id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "owner": subject})
	if err != nil {
		return nil, fmt.Errorf("repo.PhotoRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PhotoRepo.ListByTrip: scan: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PhotoRepo.ListByTrip: rows: %w", err)
	}
	return photos, nil
}

// Delete removes a photo through its owning trip. The transitive ownership
// check is part of the delete itself — there is no unguarded photo delete.
func (r *pgPhotoRepo) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	const q = `
		DELETE FROM photos p
		USING trips t
		WHERE p.id = @id AND t.id = p.trip_id AND t.owner_subject_id = @owner`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	if err != nil {
		return fmt.Errorf("repo.PhotoRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PhotoRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPhoto maps a single database row into a domain.Photo.
func scanPhoto(s scanner) (domain.Photo, error) {
	var (
		p      domain.Photo
		id     pgtype.UUID
		tripID pgtype.UUID
		destID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &destID, &p.ImageURL, &p.Caption, &p.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Photo{}, domain.ErrNotFound
		}
		return domain.Photo{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	if destID.Valid {
		d := uuid.UUID(destID.Bytes)
		p.DestinationID = &d
	}

	return p, nil
}
