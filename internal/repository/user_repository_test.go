package repository

import (
	"context"
	"testing"

	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CRUD(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	alice := newTestUser("Alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, &alice))

	dup := newTestUser("Other Alice", "alice@example.com")
	assert.ErrorIs(t, repo.Create(ctx, &dup), model.ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)
	assert.Nil(t, got.ResetToken)

	token := "reset-token"
	got.Name = "Alice B"
	got.ResetToken = &token
	got.IsAdmin = true
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.True(t, got.IsAdmin)
	require.NotNil(t, got.ResetToken)
	assert.Equal(t, token, *got.ResetToken)

	missing := newTestUser("Ghost", "ghost@example.com")
	assert.ErrorIs(t, repo.Update(ctx, &missing), model.ErrUserNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, alice.ID))
	got, err = repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_ReplaceAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	old := newTestUser("Old", "old@example.com")
	require.NoError(t, repo.Create(ctx, &old))

	err := repo.ReplaceAll(ctx, []model.User{
		newTestUser("Admin", "admin@example.com"),
		newTestUser("User", "user@example.com"),
	})
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	emails := []string{users[0].Email, users[1].Email}
	assert.ElementsMatch(t, []string{"admin@example.com", "user@example.com"}, emails)
}
