package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wayfarer-travel/backend/internal/domain"
)

// UserRepo defines the persistence operations for locally-provisioned users.
type UserRepo interface {
	// Upsert inserts a user keyed on subject_id, or refreshes email and
	// display_name on conflict. The identity token is the source of truth for
	// those attributes, so the latest values always win. Safe to call on
	// every authenticated request.
	Upsert(ctx context.Context, identity domain.Identity) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// Upsert inserts or refreshes the local user row for a verified identity.
func (r *pgUserRepo) Upsert(ctx context.Context, identity domain.Identity) (domain.User, error) {
	const q = `
		INSERT INTO users (subject_id, email, display_name)
		VALUES (@subject_id, @email, @display_name)
		ON CONFLICT (subject_id) DO UPDATE
		SET email        = EXCLUDED.email,
		    display_name = EXCLUDED.display_name,
		    updated_at   = now()
		RETURNING subject_id, email, display_name, created_at, updated_at`

	args := pgx.NamedArgs{
		"subject_id":   identity.SubjectID,
		"email":        identity.Email,
		"display_name": identity.DisplayName,
	}

	var u domain.User
	row := r.db.QueryRow(ctx, q, args)
	if err := row.Scan(&u.SubjectID, &u.Email, &u.DisplayName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Upsert: %w", err)
	}
	return u, nil
}
