package sqlite

import (
	"context"
	"testing"

	"shortener/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.Create(context.Background(), "alice", "hash")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), "alice", "other")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Create(context.Background(), "alice", "hash")
	require.NoError(t, err)

	found, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	found, err := repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, found)
}
