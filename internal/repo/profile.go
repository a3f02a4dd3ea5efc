package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// profileColumns is the select list shared by every profile read.
const profileColumns = `
	subject_id, display_name, location, location_lat, location_lng,
	travel_style, favorite_destinations, bio, profile_picture_url,
	created_at, updated_at`

// ProfileRepo defines the persistence operations for Profiles.
// Profiles are keyed directly on subject_id, so no ownership scoping is
// needed — a subject can only ever address its own row.
type ProfileRepo interface {
	// Get retrieves the subject's profile. Returns domain.ErrNotFound when
	// the subject has never written one.
	Get(ctx context.Context, subject string) (domain.Profile, error)

	// Upsert inserts the profile on first write and fully replaces every
	// field on subsequent writes, refreshing updated_at.
	Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

// pgProfileRepo is the Postgres implementation of ProfileRepo.
type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

// Get retrieves a profile by subject.
func (r *pgProfileRepo) Get(ctx context.Context, subject string) (domain.Profile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE subject_id = @subject`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"subject": subject})
	result, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Get: %w", err)
	}
	return result, nil
}

// Upsert inserts or fully replaces the subject's profile.
// created_at survives the conflict path; updated_at is always refreshed.
func (r *pgProfileRepo) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	const q = `
		INSERT INTO profiles (subject_id, display_name, location, location_lat,
			location_lng, travel_style, favorite_destinations, bio,
			profile_picture_url)
		VALUES (@subject, @display_name, @location, @location_lat, @location_lng,
			@travel_style, @favorite_destinations, @bio, @profile_picture_url)
		ON CONFLICT (subject_id) DO UPDATE
		SET display_name          = EXCLUDED.display_name,
		    location              = EXCLUDED.location,
		    location_lat          = EXCLUDED.location_lat,
		    location_lng          = EXCLUDED.location_lng,
		    travel_style          = EXCLUDED.travel_style,
		    favorite_destinations = EXCLUDED.favorite_destinations,
		    bio                   = EXCLUDED.bio,
		    profile_picture_url   = EXCLUDED.profile_picture_url,
		    updated_at            = now()
		RETURNING ` + profileColumns

	args := pgx.NamedArgs{
		"subject":               profile.SubjectID,
		"display_name":          profile.DisplayName,
		"location":              profile.Location,
		"location_lat":          profile.LocationLat, // nil becomes NULL
		"location_lng":          profile.LocationLng,
		"travel_style":          profile.TravelStyle,
		"favorite_destinations": profile.FavoriteDestinations,
		"bio":                   profile.Bio,
		"profile_picture_url":   profile.ProfilePictureURL,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanProfile maps a single database row into a domain.Profile.
func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p   domain.Profile
		lat pgtype.Float8
		lng pgtype.Float8
	)

	err := s.Scan(&p.SubjectID, &p.DisplayName, &p.Location, &lat, &lng,
		&p.TravelStyle, &p.FavoriteDestinations, &p.Bio, &p.ProfilePictureURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}

	if lat.Valid {
		v := lat.Float64
		p.LocationLat = &v
	}
	if lng.Valid {
		v := lng.Float64
		p.LocationLng = &v
	}

	return p, nil
}
