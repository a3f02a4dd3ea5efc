// Package repo contains all database access logic for the Wayfarer API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
//
// Every statement that touches an owned resource carries the requester's
// subject in its WHERE clause (directly or via a join on trips), so the
// ownership check and the mutation are a single atomic statement. A row that
// exists but belongs to someone else behaves exactly like a missing row.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// tripColumns is the enriched select list shared by every trip read.
// The count subselects are read-time aggregates — cheap at this data volume
// and always consistent with the row they accompany.
const tripColumns = `
	t.id, t.owner_subject_id, t.title, t.country, t.city,
	t.start_date, t.end_date, t.notes, t.image_url, t.trip_type,
	t.budget, t.traveler_count, t.is_favorite, t.trip_rating,
	t.created_at, t.updated_at,
	(SELECT count(*) FROM destinations d WHERE d.trip_id = t.id) AS destination_count,
	(SELECT count(*) FROM photos p WHERE p.trip_id = t.id) AS photo_count`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// All single-row operations take the requester's subject and return
// domain.ErrNotFound for rows that are absent or owned by someone else.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by subject, with aggregate counts.
	GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns all trips owned by subject, most recent start date
	// first, with aggregate counts.
	ListByOwner(ctx context.Context, subject string) ([]domain.Trip, error)

	// Update applies a TripUpdate and returns the updated record. Core fields
	// overwrite unconditionally; nil enrichment fields keep the stored value.
	Update(ctx context.Context, upd domain.TripUpdate) (domain.Trip, error)

	// Delete removes a trip owned by subject. Destinations and photos go with
	// it via ON DELETE CASCADE.
	Delete(ctx context.Context, subject string, id uuid.UUID) error

	// ToggleFavorite flips is_favorite and returns the updated record.
	ToggleFavorite(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error)

	// SetRating stores a trip rating and returns the updated record.
	// Range validation happens in the service layer.
	SetRating(ctx context.Context, subject string, id uuid.UUID, rating int) (domain.Trip, error)

	// Stats returns the itinerary aggregates for one trip owned by subject.
	// ProgressPercentage is left zero — the service computes it.
	Stats(ctx context.Context, subject string, id uuid.UUID) (domain.TripStats, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips AS t (owner_subject_id, title, country, city, start_date,
			end_date, notes, image_url, trip_type, budget, traveler_count,
			is_favorite, trip_rating)
		VALUES (@owner, @title, @country, @city, @start_date, @end_date, @notes,
			@image_url, @trip_type, @budget, @traveler_count, @is_favorite, @trip_rating)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"owner":          trip.OwnerSubjectID,
		"title":          trip.Title,
		"country":        trip.Country,
		"city":           trip.City,
		"start_date":     trip.StartDate,
		"end_date":       trip.EndDate,
		"notes":          trip.Notes,
		"image_url":      trip.ImageURL,
		"trip_type":      trip.TripType,
		"budget":         trip.Budget, // nil becomes NULL
		"traveler_count": trip.TravelerCount,
		"is_favorite":    trip.IsFavorite,
		"trip_rating":    trip.TripRating,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to the owning subject.
func (r *pgTripRepo) GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = @id AND t.owner_subject_id = @owner`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns the subject's trips ordered by start_date descending
// (most recent first), newest created first on ties.
func (r *pgTripRepo) ListByOwner(ctx context.Context, subject string) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.owner_subject_id = @owner
		ORDER BY t.start_date DESC, t.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner": subject})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}

	return trips, nil
}

// Update overwrites the core fields, keeps stored values for nil enrichment
// fields via COALESCE, and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, upd domain.TripUpdate) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title          = @title,
		    country        = @country,
		    city           = @city,
		    start_date     = @start_date,
		    end_date       = @end_date,
		    notes          = @notes,
		    image_url      = @image_url,
		    trip_type      = COALESCE(@trip_type, trip_type),
		    budget         = COALESCE(@budget, budget),
		    traveler_count = COALESCE(@traveler_count, traveler_count),
		    is_favorite    = COALESCE(@is_favorite, is_favorite),
		    trip_rating    = COALESCE(@trip_rating, trip_rating),
		    updated_at     = now()
		WHERE id = @id AND owner_subject_id = @owner`

	args := pgx.NamedArgs{
		"id":             upd.ID,
		"owner":          upd.OwnerSubjectID,
		"title":          upd.Title,
		"country":        upd.Country,
		"city":           upd.City,
		"start_date":     upd.StartDate,
		"end_date":       upd.EndDate,
		"notes":          upd.Notes,
		"image_url":      upd.ImageURL,
		"trip_type":      upd.TripType,
		"budget":         upd.Budget,
		"traveler_count": upd.TravelerCount,
		"is_favorite":    upd.IsFavorite,
		"trip_rating":    upd.TripRating,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, upd.OwnerSubjectID, upd.ID)
}

// Delete removes a trip owned by subject. Dependent destinations and photos
// are removed by the ON DELETE CASCADE constraints.
func (r *pgTripRepo) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_subject_id = @owner`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ToggleFavorite flips is_favorite in a single atomic statement.
func (r *pgTripRepo) ToggleFavorite(ctx context.Context, subject string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET is_favorite = NOT is_favorite, updated_at = now()
		WHERE id = @id AND owner_subject_id = @owner`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.ToggleFavorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.ToggleFavorite: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, subject, id)
}

// SetRating stores the rating. The CHECK constraint backs up the service-side
// range validation.
func (r *pgTripRepo) SetRating(ctx context.Context, subject string, id uuid.UUID, rating int) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET trip_rating = @rating, updated_at = now()
		WHERE id = @id AND owner_subject_id = @owner`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner": subject, "rating": rating})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetRating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetRating: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, subject, id)
}

// Stats aggregates destination and photo counts for one owned trip.
// The LEFT JOIN keeps trips with zero destinations in the result; the FILTER
// clauses ignore the all-NULL join rows those trips produce.
func (r *pgTripRepo) Stats(ctx context.Context, subject string, id uuid.UUID) (domain.TripStats, error) {
	const q = `
		SELECT
			count(d.id) AS total,
			count(*) FILTER (WHERE d.is_completed) AS completed,
			count(*) FILTER (WHERE d.priority_level = 1) AS must_see,
			(SELECT count(*) FROM photos p WHERE p.trip_id = t.id) AS photos
		FROM trips t
		LEFT JOIN destinations d ON d.trip_id = t.id
		WHERE t.id = @id AND t.owner_subject_id = @owner
		GROUP BY t.id`

	var s domain.TripStats
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	err := row.Scan(&s.TotalDestinations, &s.CompletedDestinations, &s.MustSeeDestinations, &s.TotalPhotos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripStats{}, fmt.Errorf("repo.TripRepo.Stats: %w", domain.ErrNotFound)
		}
		return domain.TripStats{}, fmt.Errorf("repo.TripRepo.Stats: %w", err)
	}
	return s, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single enriched database row into a domain.Trip.
// It handles the UUID, date, and nullable budget/rating conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
		budget pgtype.Float8
		rating pgtype.Int4
	)

	err := s.Scan(&id, &t.OwnerSubjectID, &t.Title, &t.Country, &t.City,
		&start, &end, &t.Notes, &t.ImageURL, &t.TripType,
		&budget, &t.TravelerCount, &t.IsFavorite, &rating,
		&t.CreatedAt, &t.UpdatedAt,
		&t.DestinationCount, &t.PhotoCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	if budget.Valid {
		b := budget.Float64
		t.Budget = &b
	}
	if rating.Valid {
		v := int(rating.Int32)
		t.TripRating = &v
	}

	return t, nil
}
