package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// StatsRepo aggregates a subject's activity across all of their trips.
type StatsRepo interface {
	// TravelerStats returns cross-trip totals for the subject. A subject with
	// no trips gets all-zero stats, not an error.
	TravelerStats(ctx context.Context, subject string) (domain.TravelerStats, error)
}

// pgStatsRepo is the Postgres implementation of StatsRepo.
type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

// TravelerStats computes all totals in one round trip. The outer aggregate
// has no GROUP BY, so a subject with zero trips still yields one all-zero row.
func (r *pgStatsRepo) TravelerStats(ctx context.Context, subject string) (domain.TravelerStats, error) {
	const q = `
		SELECT
			count(*) AS total_trips,
			count(*) FILTER (WHERE is_favorite) AS favorite_trips,
			count(DISTINCT country) FILTER (WHERE country <> '') AS countries_visited,
			(SELECT count(*) FROM destinations d
				JOIN trips t ON t.id = d.trip_id
				WHERE t.owner_subject_id = @subject) AS total_destinations,
			(SELECT count(*) FROM destinations d
				JOIN trips t ON t.id = d.trip_id
				WHERE t.owner_subject_id = @subject AND d.is_completed) AS completed_destinations,
			(SELECT count(*) FROM photos p
				JOIN trips t ON t.id = p.trip_id
				WHERE t.owner_subject_id = @subject) AS total_photos
		FROM trips
		WHERE owner_subject_id = @subject`

	var s domain.TravelerStats
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"subject": subject})
	err := row.Scan(&s.TotalTrips, &s.FavoriteTrips, &s.CountriesVisited,
		&s.TotalDestinations, &s.CompletedDestinations, &s.TotalPhotos)
	if err != nil {
		return domain.TravelerStats{}, fmt.Errorf("repo.StatsRepo.TravelerStats: %w", err)
	}
	return s, nil
}
