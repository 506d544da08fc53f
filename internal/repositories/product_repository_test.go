package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugsOf(products []models.Product) []string {
	slugs := make([]string, 0, len(products))
	for _, p := range products {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func TestGORMProductRepository_ListFilters(t *testing.T) {
	f := newFixture(t)
	repo := NewGORMProductRepository(f.db)
	ctx := context.Background()

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	f.createProduct(t, "budget", "10.00", 0, day.Add(2*time.Hour))
	f.createProduct(t, "midrange", "250.50", 3, day.Add(23*time.Hour))
	f.createProduct(t, "flagship", "999.99", 12, day.Add(30*time.Hour))

	min := decimal.RequireFromString("100")
	max := decimal.RequireFromString("500")
	stock := 3

	tests := []struct {
		name   string
		filter ProductFilter
		want   []string
	}{
		{"no filter", ProductFilter{}, []string{"flagship", "midrange", "budget"}},
		{"min price", ProductFilter{MinPrice: &min}, []string{"flagship", "midrange"}},
		{"max price", ProductFilter{MaxPrice: &max}, []string{"midrange", "budget"}},
		{"price range", ProductFilter{MinPrice: &min, MaxPrice: &max}, []string{"midrange"}},
		{"in stock", ProductFilter{MinStock: &stock}, []string{"flagship", "midrange"}},
		{"created on", ProductFilter{CreatedOn: &day}, []string{"midrange", "budget"}},
		{"category", ProductFilter{CategoryID: f.category.ID}, []string{"flagship", "midrange", "budget"}},
		{"page", ProductFilter{Offset: 1, Limit: 1}, []string{"midrange"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := repo.List(ctx, tt.filter, ExcludeDeleted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugsOf(products))
			if tt.filter.Limit == 0 {
				assert.EqualValues(t, len(tt.want), total)
			}
		})
	}

	products, _, err := repo.List(ctx, ProductFilter{}, ExcludeDeleted)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	require.NotNil(t, products[0].Seller)
	assert.Equal(t, "merchant-co", products[0].Seller.Slug)
	assert.Equal(t, "phones", products[0].Category.Slug)
}

func TestGORMProductRepository_SoftDelete(t *testing.T) {
	f := newFixture(t)
	repo := NewGORMProductRepository(f.db)
	ctx := context.Background()

	p := f.createProduct(t, "retired", "5.00", 1, time.Now())
	require.NoError(t, repo.SoftDelete(ctx, p.ID, time.Now()))

	_, err := repo.GetBySlug(ctx, "retired", ExcludeDeleted)
	assert.True(t, errors.Is(err, ErrNotFound))

	products, total, err := repo.List(ctx, ProductFilter{}, ExcludeDeleted)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Zero(t, total)

	kept, err := repo.GetBySlug(ctx, "retired", IncludeDeleted)
	require.NoError(t, err)
	assert.True(t, kept.IsDeleted)
	assert.NotNil(t, kept.DeletedAt)

	err = repo.SoftDelete(ctx, p.ID, time.Now())
	assert.True(t, errors.Is(err, ErrNotFound), "deleting twice finds no live row")
}

func TestGORMProductRepository_AverageRatings(t *testing.T) {
	f := newFixture(t)
	products := NewGORMProductRepository(f.db)
	reviews := NewGORMReviewRepository(f.db)
	ctx := context.Background()

	rated := f.createProduct(t, "rated", "1.00", 1, time.Now())
	unrated := f.createProduct(t, "unrated", "1.00", 1, time.Now())
	other := f.createUser(t, "other")
	third := f.createUser(t, "third")

	require.NoError(t, reviews.Create(ctx, &models.Review{UserID: f.user.ID, ProductID: rated.ID, Rating: 5, Text: "great"}))
	require.NoError(t, reviews.Create(ctx, &models.Review{UserID: other.ID, ProductID: rated.ID, Rating: 2, Text: "meh"}))
	deleted := &models.Review{UserID: third.ID, ProductID: rated.ID, Rating: 1, Text: "bad"}
	require.NoError(t, reviews.Create(ctx, deleted))
	require.NoError(t, reviews.SoftDelete(ctx, deleted.ID, time.Now()))

	ratings, err := products.AverageRatings(ctx, []string{rated.ID, unrated.ID})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, ratings[rated.ID], 0.0001)
	_, ok := ratings[unrated.ID]
	assert.False(t, ok)
}

func TestGORMProductRepository_Update(t *testing.T) {
	f := newFixture(t)
	repo := NewGORMProductRepository(f.db)
	ctx := context.Background()

	p := f.createProduct(t, "lamp", "20.00", 2, time.Now())
	p.PriceCurrent = decimal.RequireFromString("18.00")
	old := decimal.RequireFromString("20.00")
	p.PriceOld = &old
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID, ExcludeDeleted)
	require.NoError(t, err)
	assert.True(t, got.PriceCurrent.Equal(decimal.RequireFromString("18")))
	require.NotNil(t, got.PriceOld)
	assert.True(t, got.PriceOld.Equal(old))
}

func TestGORMProductRepository_ZeroStockIsStored(t *testing.T) {
	f := newFixture(t)
	repo := NewGORMProductRepository(f.db)
	ctx := context.Background()

	soldOut := f.createProduct(t, "soldout", "1.00", 0, time.Now())
	assert.Equal(t, 0, soldOut.InStock)

	got, err := repo.GetByID(ctx, soldOut.ID, ExcludeDeleted)
	require.NoError(t, err)
	assert.Equal(t, 0, got.InStock)

	got.InStock = 3
	require.NoError(t, repo.Update(ctx, got))
	got.InStock = 0
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, soldOut.ID, ExcludeDeleted)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.InStock)
}
