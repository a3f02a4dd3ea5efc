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

// destinationColumns is the select list shared by every destination read.
const destinationColumns = `
	d.id, d.trip_id, d.name, d.description, d.image_url, d.order_index,
	d.destination_type, d.address, d.visit_date, d.visit_time, d.price_range,
	d.priority_level, d.is_completed, d.location_lat, d.location_lng,
	d.created_at, d.updated_at`

// DestinationRepo defines the persistence operations for Destinations.
//
// A destination has no owner column — every statement resolves authorization
// transitively by joining the parent trip and matching its owner_subject_id
// against the requesting subject, in the same atomic statement as the
// read or mutation.
type DestinationRepo interface {
	// Create inserts a destination under a trip owned by subject and returns
	// the persisted record. Returns domain.ErrNotFound when the trip is
	// absent or owned by someone else.
	Create(ctx context.Context, subject string, dest domain.Destination) (domain.Destination, error)

	// GetByID retrieves one destination whose parent trip is owned by subject.
	GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error)

	// ListByTrip returns a trip's destinations in itinerary display order:
	// priority_level ascending, then visit_date ascending (unscheduled last),
	// then order_index ascending. The ordering is a user-facing contract.
	ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Destination, error)

	// Update applies a DestinationUpdate and returns the updated record.
	// Name, description, image_url, and order_index overwrite unconditionally;
	// nil enrichment fields keep the stored value.
	Update(ctx context.Context, upd domain.DestinationUpdate) (domain.Destination, error)

	// Delete removes one destination whose parent trip is owned by subject.
	Delete(ctx context.Context, subject string, id uuid.UUID) error

	// ToggleCompleted flips is_completed and returns the updated record.
	ToggleCompleted(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error)
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

// Create inserts via INSERT ... SELECT over trips so the parent-ownership
// check and the insert are one statement: zero rows selected means zero rows
// inserted, reported as domain.ErrNotFound.
func (r *pgDestinationRepo) Create(ctx context.Context, subject string, dest domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations AS d (trip_id, name, description, image_url,
			order_index, destination_type, address, visit_date, visit_time,
			price_range, priority_level, is_completed, location_lat, location_lng)
		SELECT t.id, @name, @description, @image_url, @order_index,
			@destination_type, @address, @visit_date, @visit_time,
			@price_range, @priority_level, @is_completed, @location_lat, @location_lng
		FROM trips t
		WHERE t.id = @trip_id AND t.owner_subject_id = @owner
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"trip_id":          dest.TripID,
		"owner":            subject,
		"name":             dest.Name,
		"description":      dest.Description,
		"image_url":        dest.ImageURL,
		"order_index":      dest.OrderIndex,
		"destination_type": dest.DestinationType,
		"address":          dest.Address,
		"visit_date":       dest.VisitDate, // nil becomes NULL
		"visit_time":       dest.VisitTime,
		"price_range":      dest.PriceRange,
		"priority_level":   dest.PriorityLevel,
		"is_completed":     dest.IsCompleted,
		"location_lat":     dest.LocationLat,
		"location_lng":     dest.LocationLng,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a destination through its owning trip.
func (r *pgDestinationRepo) GetByID(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE d.id = @id AND t.owner_subject_id = @owner`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns destinations in itinerary display order.
func (r *pgDestinationRepo) ListByTrip(ctx context.Context, subject string, tripID uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE d.trip_id = @trip_id AND t.owner_subject_id = @owner
		ORDER BY d.priority_level ASC, d.visit_date ASC NULLS LAST, d.order_index ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "owner": subject})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: rows: %w", err)
	}
	return dests, nil
}

// Update overwrites the core fields and keeps stored values for nil
// enrichment fields via COALESCE. UPDATE ... FROM trips makes the transitive
// ownership check part of the same statement.
func (r *pgDestinationRepo) Update(ctx context.Context, upd domain.DestinationUpdate) (domain.Destination, error) {
	const q = `
		UPDATE destinations AS d
		SET name             = @name,
		    description      = @description,
		    image_url        = @image_url,
		    order_index      = @order_index,
		    destination_type = COALESCE(@destination_type, d.destination_type),
		    address          = COALESCE(@address, d.address),
		    visit_date       = COALESCE(@visit_date, d.visit_date),
		    visit_time       = COALESCE(@visit_time, d.visit_time),
		    price_range      = COALESCE(@price_range, d.price_range),
		    priority_level   = COALESCE(@priority_level, d.priority_level),
		    is_completed     = COALESCE(@is_completed, d.is_completed),
		    location_lat     = COALESCE(@location_lat, d.location_lat),
		    location_lng     = COALESCE(@location_lng, d.location_lng),
		    updated_at       = now()
		FROM trips t
		WHERE d.id = @id AND t.id = d.trip_id AND t.owner_subject_id = @owner
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":               upd.ID,
		"owner":            upd.OwnerSubjectID,
		"name":             upd.Name,
		"description":      upd.Description,
		"image_url":        upd.ImageURL,
		"order_index":      upd.OrderIndex,
		"destination_type": upd.DestinationType,
		"address":          upd.Address,
		"visit_date":       upd.VisitDate,
		"visit_time":       upd.VisitTime,
		"price_range":      upd.PriceRange,
		"priority_level":   upd.PriorityLevel,
		"is_completed":     upd.IsCompleted,
		"location_lat":     upd.LocationLat,
		"location_lng":     upd.LocationLng,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination through its owning trip.
func (r *pgDestinationRepo) Delete(ctx context.Context, subject string, id uuid.UUID) error {
	const q = `
		DELETE FROM destinations d
		USING trips t
		WHERE d.id = @id AND t.id = d.trip_id AND t.owner_subject_id = @owner`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ToggleCompleted flips is_completed in a single atomic statement.
func (r *pgDestinationRepo) ToggleCompleted(ctx context.Context, subject string, id uuid.UUID) (domain.Destination, error) {
	const q = `
		UPDATE destinations AS d
		SET is_completed = NOT d.is_completed, updated_at = now()
		FROM trips t
		WHERE d.id = @id AND t.id = d.trip_id AND t.owner_subject_id = @owner
		RETURNING ` + destinationColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner": subject})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.ToggleCompleted: %w", err)
	}
	return result, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d         domain.Destination
		id        pgtype.UUID
		tripID    pgtype.UUID
		visitDate pgtype.Date
		lat       pgtype.Float8
		lng       pgtype.Float8
	)

	err := s.Scan(&id, &tripID, &d.Name, &d.Description, &d.ImageURL, &d.OrderIndex,
		&d.DestinationType, &d.Address, &visitDate, &d.VisitTime, &d.PriceRange,
		&d.PriorityLevel, &d.IsCompleted, &lat, &lng,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	if visitDate.Valid {
		vd := visitDate.Time
		d.VisitDate = &vd
	}
	if lat.Valid {
		v := lat.Float64
		d.LocationLat = &v
	}
	if lng.Valid {
		v := lng.Float64
		d.LocationLng = &v
	}

	return d, nil
}
