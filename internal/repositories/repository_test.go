package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a private, migrated in-memory SQLite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
	}, zap.NewNop(), "error")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type fixture struct {
	db       *gorm.DB
	user     *models.User
	seller   *models.Seller
	category *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db}
	f.user = f.createUser(t, "buyer")

	owner := f.createUser(t, "merchant")
	f.seller = &models.Seller{UserID: owner.ID, BusinessName: "Merchant Co", Slug: "merchant-co"}
	require.NoError(t, NewGORMSellerRepository(db).Create(context.Background(), f.seller))

	f.category = &models.Category{Name: "Phones", Slug: "phones"}
	require.NoError(t, NewGORMCategoryRepository(db).Create(context.Background(), f.category))
	return f
}

func (f *fixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, NewGORMUserRepository(f.db).Create(context.Background(), u))
	return u
}

func (f *fixture) createProduct(t *testing.T, name, price string, stock int, createdAt time.Time) *models.Product {
	t.Helper()
	p := &models.Product{
		SellerID:     &f.seller.ID,
		Name:         name,
		Slug:         name,
		PriceCurrent: decimal.RequireFromString(price),
		CategoryID:   f.category.ID,
		InStock:      stock,
		Image1:       "products/" + name + ".png",
	}
	p.CreatedAt = createdAt
	require.NoError(t, NewGORMProductRepository(f.db).Create(context.Background(), p))
	return p
}
