package repositories

import (
	"context"
	"time"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID string
	SellerID   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	// MinStock keeps products with at least this many units in stock.
	MinStock *int
	// CreatedOn keeps products created on this UTC calendar date.
	CreatedOn *time.Time
	Offset    int
	Limit     int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter, vis Visibility) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string, vis Visibility) (*models.Product, error)
	GetByID(ctx context.Context, id string, vis Visibility) (*models.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// AverageRatings returns the mean rating of the non-deleted reviews of each product.
	// Products without reviews are absent from the map.
	AverageRatings(ctx context.Context, productIDs []string) (map[string]float64, error)
}
