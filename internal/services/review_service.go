package services

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

const (
	MsgProductNotOrdered = "Access denied, product not in order"
	MsgReviewExists      = "Access denied, review already exists"
	MsgReviewNotFound    = "Review does not exist!"
	MsgReviewDeleted     = "Review deleted successfully"
)

// ReviewInput is the payload for creating or replacing a review.
type ReviewInput struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"required,max=2000"`
}

func reviewOwner(r *models.Review) string {
	return r.UserID
}

// ReviewService manages product reviews.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	now      func() time.Time
	log      *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews repositories.ReviewRepository,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	log *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		orders:   orders,
		now:      time.Now,
		log:      log.Named("review"),
	}
}

func (s *ReviewService) product(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(ctx, productSlug, repositories.ExcludeDeleted)
	if err != nil {
		return nil, translateNotFound(err, MsgProductNotFound)
	}
	return product, nil
}

// ProductReviews lists the live reviews of a live product.
func (s *ReviewService) ProductReviews(ctx context.Context, productSlug string) ([]models.Review, error) {
	product, err := s.product(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, product.ID, repositories.ExcludeDeleted)
}

// CheckCanReview enforces that userID ordered the product and has not reviewed it yet.
func (s *ReviewService) CheckCanReview(ctx context.Context, userID, productSlug string) (*models.Product, error) {
	product, err := s.product(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	ordered, err := s.orders.HasOrderedProduct(ctx, userID, product.ID)
	if err != nil {
		return nil, err
	}
	if !ordered {
		return nil, apperr.Forbidden(MsgProductNotOrdered)
	}

	exists, err := s.reviews.Exists(ctx, userID, product.ID, repositories.ExcludeDeleted)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Forbidden(MsgReviewExists)
	}
	return product, nil
}

// Create stores the review of userID for the product identified by slug.
func (s *ReviewService) Create(ctx context.Context, userID, productSlug string, in ReviewInput) (*models.Review, error) {
	product, err := s.CheckCanReview(ctx, userID, productSlug)
	if err != nil {
		return nil, err
	}

	review := &models.Review{UserID: userID, ProductID: product.ID, Rating: in.Rating, Text: in.Text}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, review.ID, repositories.ExcludeDeleted)
}

// Get returns a live review.
func (s *ReviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id, repositories.ExcludeDeleted)
	if err != nil {
		return nil, translateNotFound(err, MsgReviewNotFound)
	}
	return review, nil
}

func (s *ReviewService) owned(ctx context.Context, method, userID, id string) (*models.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permissions.IsOwner(method, userID, review, reviewOwner) {
		return nil, apperr.Forbidden(MsgPermissionDenied)
	}
	return review, nil
}

// Update replaces the rating and text of a review owned by userID.
func (s *ReviewService) Update(ctx context.Context, userID, id string, in ReviewInput) (*models.Review, error) {
	review, err := s.owned(ctx, http.MethodPut, userID, id)
	if err != nil {
		return nil, err
	}
	review.Rating = in.Rating
	review.Text = in.Text
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, translateNotFound(err, MsgReviewNotFound)
	}
	return review, nil
}

// Delete soft-deletes a review owned by userID.
func (s *ReviewService) Delete(ctx context.Context, userID, id string) error {
	review, err := s.owned(ctx, http.MethodDelete, userID, id)
	if err != nil {
		return err
	}
	if err := s.reviews.SoftDelete(ctx, review.ID, s.now().UTC()); err != nil {
		return translateNotFound(err, MsgReviewNotFound)
	}
	s.log.Info("review deleted", zap.String("review_id", review.ID), zap.String("user_id", userID))
	return nil
}
