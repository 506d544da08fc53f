package repositories

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Lookups(t *testing.T) {
	f := newFixture(t)
	repo := NewGORMUserRepository(f.db)
	ctx := context.Background()

	byName, err := repo.GetByUsername(ctx, "buyer")
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer", byID.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))

	dup := &models.User{Username: "buyer", Email: "again@example.com", Password: "hash"}
	assert.Error(t, repo.Create(ctx, dup), "username is unique")
}
