package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/permissions"
	"storefront/internal/repositories"
	"storefront/pkg/slug"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MsgNotASeller       = "Access denied, you are not a seller"
	MsgAlreadySeller    = "Seller profile already exists"
	MsgPermissionDenied = "You do not have permission to perform this action."
)

// SellerInput is the payload for becoming a seller.
type SellerInput struct {
	BusinessName string `json:"business_name" validate:"required,max=255"`
	Avatar       string `json:"avatar" validate:"omitempty,max=255"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	City         string `json:"city" validate:"omitempty,max=100"`
	Country      string `json:"country" validate:"omitempty,max=100"`
}

// ProductInput is the payload for creating or replacing a product. Category is a category slug.
type ProductInput struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Desc         string           `json:"desc"`
	PriceOld     *decimal.Decimal `json:"price_old"`
	PriceCurrent decimal.Decimal  `json:"price_current"`
	Category     string           `json:"category" validate:"required"`
	InStock      *int             `json:"in_stock" validate:"omitempty,min=0"`
	Image1       string           `json:"image1" validate:"required,max=255"`
	Image2       string           `json:"image2" validate:"omitempty,max=255"`
	Image3       string           `json:"image3" validate:"omitempty,max=255"`
}

func (in ProductInput) checkPrices() error {
	fields := map[string]string{}
	if !in.PriceCurrent.IsPositive() {
		fields["price_current"] = "Ensure this value is greater than 0."
	}
	if in.PriceOld != nil && in.PriceOld.IsNegative() {
		fields["price_old"] = "Ensure this value is greater than or equal to 0."
	}
	if len(fields) > 0 {
		return apperr.Invalid("Validation failed", fields)
	}
	return nil
}

// productOwner returns the user that owns a product through its seller.
func productOwner(p *models.Product) string {
	if p.Seller == nil {
		return ""
	}
	return p.Seller.UserID
}

// SellerService handles seller onboarding and the seller's own product catalog.
type SellerService struct {
	sellers    repositories.SellerRepository
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	now        func() time.Time
	log        *zap.Logger
}

// NewSellerService creates a new SellerService.
func NewSellerService(
	sellers repositories.SellerRepository,
	categories repositories.CategoryRepository,
	products repositories.ProductRepository,
	log *zap.Logger,
) *SellerService {
	return &SellerService{
		sellers:    sellers,
		categories: categories,
		products:   products,
		now:        time.Now,
		log:        log.Named("seller"),
	}
}

// Register makes userID a seller.
func (s *SellerService) Register(ctx context.Context, userID string, in SellerInput) (*models.Seller, error) {
	existing, err := s.sellers.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict(MsgAlreadySeller)
	}

	sellerSlug, err := slug.Unique(in.BusinessName, func(candidate string) (bool, error) {
		return s.sellers.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	seller := &models.Seller{
		UserID:       userID,
		BusinessName: in.BusinessName,
		Slug:         sellerSlug,
		Avatar:       in.Avatar,
		Phone:        in.Phone,
		City:         in.City,
		Country:      in.Country,
	}
	if err := s.sellers.Create(ctx, seller); err != nil {
		return nil, err
	}
	s.log.Info("seller registered", zap.String("seller_id", seller.ID), zap.String("slug", seller.Slug))
	return seller, nil
}

func (s *SellerService) sellerOf(ctx context.Context, userID string) (*models.Seller, error) {
	seller, err := s.sellers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Forbidden(MsgNotASeller)
		}
		return nil, err
	}
	return seller, nil
}

func (s *SellerService) categoryOf(ctx context.Context, categorySlug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.Invalid("Validation failed", map[string]string{"category": MsgCategoryNotFound})
		}
		return nil, err
	}
	return category, nil
}

// CreateProduct lists a new product for the seller profile of userID.
func (s *SellerService) CreateProduct(ctx context.Context, userID string, in ProductInput) (*ProductView, error) {
	seller, err := s.sellerOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := in.checkPrices(); err != nil {
		return nil, err
	}
	category, err := s.categoryOf(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	productSlug, err := slug.Unique(in.Name, func(candidate string) (bool, error) {
		return s.products.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		SellerID: &seller.ID,
		Slug:     productSlug,
		InStock:  models.DefaultStock,
	}
	applyProductInput(product, in, category)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.Seller = seller

	s.log.Info("product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	return &ProductView{Product: *product}, nil
}

// UpdateProduct replaces the fields of a product owned by userID. The slug is kept.
func (s *SellerService) UpdateProduct(ctx context.Context, userID, productSlug string, in ProductInput) (*ProductView, error) {
	product, err := s.ownedProduct(ctx, http.MethodPut, userID, productSlug)
	if err != nil {
		return nil, err
	}
	if err := in.checkPrices(); err != nil {
		return nil, err
	}
	category, err := s.categoryOf(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	applyProductInput(product, in, category)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	views, err := attachRatings(ctx, s.products, []models.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeleteProduct soft-deletes a product owned by userID.
func (s *SellerService) DeleteProduct(ctx context.Context, userID, productSlug string) error {
	product, err := s.ownedProduct(ctx, http.MethodDelete, userID, productSlug)
	if err != nil {
		return err
	}
	if err := s.products.SoftDelete(ctx, product.ID, s.now().UTC()); err != nil {
		return translateNotFound(err, MsgProductNotFound)
	}
	s.log.Info("product deleted", zap.String("product_id", product.ID))
	return nil
}

func (s *SellerService) ownedProduct(ctx context.Context, method, userID, productSlug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(ctx, productSlug, repositories.ExcludeDeleted)
	if err != nil {
		return nil, translateNotFound(err, MsgProductNotFound)
	}
	if !permissions.IsOwner(method, userID, product, productOwner) {
		return nil, apperr.Forbidden(MsgPermissionDenied)
	}
	return product, nil
}

func applyProductInput(p *models.Product, in ProductInput, category *models.Category) {
	p.Name = in.Name
	p.Desc = in.Desc
	p.PriceOld = in.PriceOld
	p.PriceCurrent = in.PriceCurrent
	p.CategoryID = category.ID
	p.Category = *category
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	p.Image1 = in.Image1
	p.Image2 = in.Image2
	p.Image3 = in.Image3
}
