package repositories

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// withRelations preloads what a product representation embeds.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Seller").Preload("Category")
}

// List retrieves one page of products matching filter, plus the total number of matches.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter, vis Visibility) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(scopeVisible("products", vis))

	if filter.CategoryID != "" {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.SellerID != "" {
		query = query.Where("products.seller_id = ?", filter.SellerID)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price_current >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price_current <= ?", *filter.MaxPrice)
	}
	if filter.MinStock != nil {
		query = query.Where("products.in_stock >= ?", *filter.MinStock)
	}
	if filter.CreatedOn != nil {
		day := filter.CreatedOn.UTC().Truncate(24 * time.Hour)
		query = query.Where("products.created_at >= ? AND products.created_at < ?", day, day.Add(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	page := query.Scopes(withRelations).Order("products.created_at DESC").Order("products.id")
	if filter.Limit > 0 {
		page = page.Offset(filter.Offset).Limit(filter.Limit)
	}

	var products []models.Product
	if err := page.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(ctx context.Context, slug string, vis Visibility) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Scopes(withRelations, scopeVisible("products", vis)).
		First(&product, "products.slug = ?", slug).Error
	if err != nil {
		return nil, notFound(err, "product with slug %s", slug)
	}
	return &product, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string, vis Visibility) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Scopes(withRelations, scopeVisible("products", vis)).
		First(&product, "products.id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "product with ID %s", id)
	}
	return &product, nil
}

// SlugExists reports whether any product, deleted or not, already uses slug.
func (r *GORMProductRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Product{}, "slug = ?", slug)
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves every column of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// SoftDelete flags a product as deleted without removing the row.
func (r *GORMProductRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return softDelete(ctx, r.db, &models.Product{}, "product", id, at)
}

// AverageRatings computes the mean non-deleted review rating per product.
func (r *GORMProductRepository) AverageRatings(ctx context.Context, productIDs []string) (map[string]float64, error) {
	ratings := make(map[string]float64, len(productIDs))
	if len(productIDs) == 0 {
		return ratings, nil
	}

	var rows []struct {
		ProductID string
		Rating    float64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("product_id, AVG(rating) AS rating").
		Where("product_id IN ? AND is_deleted = ?", productIDs, false).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute product ratings: %w", err)
	}

	for _, row := range rows {
		ratings[row.ProductID] = row.Rating
	}
	return ratings, nil
}

// softDelete sets is_deleted and deleted_at on the live row identified by id.
func softDelete(ctx context.Context, db *gorm.DB, model any, what, id string, at time.Time) error {
	res := db.WithContext(ctx).Model(model).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "deleted_at": at})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", what, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %s not found for deletion: %w", what, id, ErrNotFound)
	}
	return nil
}
