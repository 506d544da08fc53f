package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// SellerRepository defines the interface for seller data access.
type SellerRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Seller, error)
	GetByUserID(ctx context.Context, userID string) (*models.Seller, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, seller *models.Seller) error
}

// GORMSellerRepository is a GORM implementation of SellerRepository.
type GORMSellerRepository struct {
	db *gorm.DB
}

// NewGORMSellerRepository creates a new instance of GORMSellerRepository.
func NewGORMSellerRepository(db *gorm.DB) *GORMSellerRepository {
	return &GORMSellerRepository{db: db}
}

func (r *GORMSellerRepository) GetBySlug(ctx context.Context, slug string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "slug = ?", slug).Error; err != nil {
		return nil, notFound(err, "seller with slug %s", slug)
	}
	return &seller, nil
}

func (r *GORMSellerRepository) GetByUserID(ctx context.Context, userID string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, "seller for user %s", userID)
	}
	return &seller, nil
}

func (r *GORMSellerRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Seller{}, "slug = ?", slug)
}

func (r *GORMSellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(seller).Error; err != nil {
		return fmt.Errorf("failed to create seller: %w", err)
	}
	return nil
}
