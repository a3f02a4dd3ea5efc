package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/backend/internal/domain"
	"github.com/wayfarer-travel/backend/internal/repo"
)

func TestUserRepo_Upsert_Insert(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewUserRepo(tx)

	got, err := r.Upsert(ctx, domain.Identity{
		SubjectID:   "auth0|newcomer",
		Email:       "newcomer@example.com",
		DisplayName: "New Comer",
	})

	require.NoError(t, err)
	assert.Equal(t, "auth0|newcomer", got.SubjectID)
	assert.Equal(t, "newcomer@example.com", got.Email)
	assert.Equal(t, "New Comer", got.DisplayName)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUserRepo_Upsert_RefreshesTokenAttributes(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewUserRepo(tx)

	first, err := r.Upsert(ctx, domain.Identity{
		SubjectID: "auth0|returning",
		Email:     "old@example.com",
	})
	require.NoError(t, err)

	// The token is the source of truth: a changed email must win.
	second, err := r.Upsert(ctx, domain.Identity{
		SubjectID:   "auth0|returning",
		Email:       "new@example.com",
		DisplayName: "Returning User",
	})

	require.NoError(t, err)
	assert.Equal(t, first.SubjectID, second.SubjectID)
	assert.Equal(t, "new@example.com", second.Email)
	assert.Equal(t, "Returning User", second.DisplayName)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "created_at survives the conflict path")
}

func TestUserRepo_Upsert_Idempotent(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	r := repo.NewUserRepo(tx)

	identity := domain.Identity{SubjectID: "auth0|steady", Email: "steady@example.com"}

	first, err := r.Upsert(ctx, identity)
	require.NoError(t, err)

	second, err := r.Upsert(ctx, identity)
	require.NoError(t, err)

	assert.Equal(t, first.SubjectID, second.SubjectID)
	assert.Equal(t, first.Email, second.Email)
}
