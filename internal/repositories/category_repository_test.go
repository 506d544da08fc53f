package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCategoryRepository creates a GORMCategoryRepository over a mocked postgres connection.
func newMockCategoryRepository(t *testing.T) (*GORMCategoryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGORMCategoryRepository(gormDB), mock, mockDB
}

func TestGORMCategoryRepository_GetBySlug(t *testing.T) {
	t.Run("finds existing category", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "slug", "image"}).
			AddRow("c6f1a3a2-58c4-4bb5-9a55-1f0a4e0c2f11", now, now, "Phones", "phones", "categories/phones.png")

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE slug = \$1`).
			WithArgs("phones", 1).
			WillReturnRows(rows)

		category, err := repo.GetBySlug(context.Background(), "phones")

		require.NoError(t, err)
		assert.Equal(t, "Phones", category.Name)
		assert.Equal(t, "categories/phones.png", category.Image)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "categories" WHERE slug = \$1`).
			WithArgs("nope", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetBySlug(context.Background(), "nope")

		assert.True(t, errors.Is(err, ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		repo, mock, mockDB := newMockCategoryRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "categories"`).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetBySlug(context.Background(), "phones")

		assert.ErrorContains(t, err, "connection reset")
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestGORMCategoryRepository_List(t *testing.T) {
	repo, mock, mockDB := newMockCategoryRepository(t)
	defer mockDB.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "slug", "image"}).
		AddRow("0b5c2e5e-6f7e-4d9b-8a31-3f7a1d7c9e01", now, now, "Audio", "audio", "").
		AddRow("5d1e8c4b-2a9f-4b3e-9c6d-7e8f9a0b1c2d", now, now, "Phones", "phones", "")

	mock.ExpectQuery(`SELECT \* FROM "categories" ORDER BY name ASC`).WillReturnRows(rows)

	categories, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "audio", categories[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
