package repositories

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID string, vis Visibility) ([]models.Review, error)
	GetByID(ctx context.Context, id string, vis Visibility) (*models.Review, error)
	Exists(ctx context.Context, userID, productID string, vis Visibility) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// ListByProduct returns the reviews of a product, newest first.
func (r *GORMReviewRepository) ListByProduct(ctx context.Context, productID string, vis Visibility) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(scopeVisible("reviews", vis)).
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(ctx context.Context, id string, vis Visibility) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(scopeVisible("reviews", vis)).
		First(&review, "reviews.id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "review with ID %s", id)
	}
	return &review, nil
}

// Exists reports whether userID already reviewed productID.
func (r *GORMReviewRepository) Exists(ctx context.Context, userID, productID string, vis Visibility) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Scopes(scopeVisible("reviews", vis)).
		Where("reviews.user_id = ? AND reviews.product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review of user %s: %w", userID, err)
	}
	return count > 0, nil
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update saves the rating and text of a live review.
func (r *GORMReviewRepository) Update(ctx context.Context, review *models.Review) error {
	res := r.db.WithContext(ctx).Model(review).
		Where("is_deleted = ?", false).
		Updates(map[string]any{"rating": review.Rating, "text": review.Text})
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s not found for update: %w", review.ID, ErrNotFound)
	}
	return nil
}

// SoftDelete flags a review as deleted without removing the row.
func (r *GORMReviewRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return softDelete(ctx, r.db, &models.Review{}, "review", id, at)
}
