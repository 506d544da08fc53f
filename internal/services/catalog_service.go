package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/slug"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MsgCategoryNotFound = "Category does not exist!"
	MsgSellerNotFound   = "Seller does not exist!"
	MsgProductNotFound  = "Product does not exist!"
	MsgInvalidPage      = "Invalid page."
)

// ProductView is a product together with its average review rating.
type ProductView struct {
	models.Product
	Rating float64
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Count   int64
	Page    int
	PerPage int
	Results []ProductView
}

// ProductListParams are the raw query parameters of a product listing.
type ProductListParams struct {
	MaxPrice  string `query:"max_price"`
	MinPrice  string `query:"min_price"`
	InStock   string `query:"in_stock"`
	CreatedAt string `query:"created_at"`
	Page      string `query:"page"`
}

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name  string `json:"name" form:"name" validate:"required,max=100"`
	Image string `json:"image" form:"image" validate:"omitempty,max=255"`
}

// CatalogService serves the public read side of the store: categories, sellers and products.
type CatalogService struct {
	categories repositories.CategoryRepository
	sellers    repositories.SellerRepository
	products   repositories.ProductRepository
	pageSize   int
	log        *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	categories repositories.CategoryRepository,
	sellers repositories.SellerRepository,
	products repositories.ProductRepository,
	pageSize int,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		sellers:    sellers,
		products:   products,
		pageSize:   pageSize,
		log:        log.Named("catalog"),
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory stores a new category with a slug derived from its name.
func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	taken, err := s.categories.NameExists(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Invalid("Validation failed", map[string]string{
			"name": "category with this name already exists.",
		})
	}

	categorySlug, err := slug.Unique(in.Name, func(candidate string) (bool, error) {
		return s.categories.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Slug: categorySlug, Image: in.Image}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.log.Info("category created", zap.String("slug", category.Slug))
	return category, nil
}

// CategoryProducts lists the live products of the category identified by slug.
func (s *CatalogService) CategoryProducts(ctx context.Context, categorySlug string) ([]ProductView, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, translateNotFound(err, MsgCategoryNotFound)
	}
	products, _, err := s.products.List(ctx, repositories.ProductFilter{CategoryID: category.ID}, repositories.ExcludeDeleted)
	if err != nil {
		return nil, err
	}
	return s.withRatings(ctx, products)
}

// SellerProducts lists the live products of the seller identified by slug.
func (s *CatalogService) SellerProducts(ctx context.Context, sellerSlug string) ([]ProductView, error) {
	seller, err := s.sellers.GetBySlug(ctx, sellerSlug)
	if err != nil {
		return nil, translateNotFound(err, MsgSellerNotFound)
	}
	products, _, err := s.products.List(ctx, repositories.ProductFilter{SellerID: seller.ID}, repositories.ExcludeDeleted)
	if err != nil {
		return nil, err
	}
	return s.withRatings(ctx, products)
}

// ListProducts returns one page of live products matching params.
func (s *CatalogService) ListProducts(ctx context.Context, params ProductListParams) (*ProductPage, error) {
	filter, page, err := s.ParseProductFilter(params)
	if err != nil {
		return nil, err
	}

	products, total, err := s.products.List(ctx, filter, repositories.ExcludeDeleted)
	if err != nil {
		return nil, err
	}
	if page > 1 && int64(filter.Offset) >= total {
		return nil, apperr.NotFound(MsgInvalidPage)
	}

	views, err := s.withRatings(ctx, products)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Count: total, Page: page, PerPage: filter.Limit, Results: views}, nil
}

// ParseProductFilter validates the listing parameters. Every invalid parameter is reported
// in the returned error's Fields.
func (s *CatalogService) ParseProductFilter(params ProductListParams) (repositories.ProductFilter, int, error) {
	filter := repositories.ProductFilter{Limit: s.pageSize}
	fields := map[string]string{}

	parsePrice := func(key, raw string) *decimal.Decimal {
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			fields[key] = "Enter a valid non-negative number."
			return nil
		}
		return &d
	}
	filter.MaxPrice = parsePrice("max_price", params.MaxPrice)
	filter.MinPrice = parsePrice("min_price", params.MinPrice)

	if params.InStock != "" {
		n, err := strconv.Atoi(params.InStock)
		if err != nil || n < 0 {
			fields["in_stock"] = "Enter a valid non-negative whole number."
		} else {
			filter.MinStock = &n
		}
	}

	if params.CreatedAt != "" {
		day, err := time.ParseInLocation("2006-01-02", params.CreatedAt, time.UTC)
		if err != nil {
			fields["created_at"] = "Enter a valid date in YYYY-MM-DD format."
		} else {
			filter.CreatedOn = &day
		}
	}

	page := 1
	if params.Page != "" {
		n, err := strconv.Atoi(params.Page)
		if err != nil || n < 1 {
			fields["page"] = "Enter a valid page number."
		} else {
			page = n
		}
	}

	if len(fields) > 0 {
		return filter, 0, apperr.Invalid("Validation failed", fields)
	}
	filter.Offset = (page - 1) * filter.Limit
	return filter, page, nil
}

// ProductDetail returns the live product identified by slug.
func (s *CatalogService) ProductDetail(ctx context.Context, productSlug string) (*ProductView, error) {
	product, err := s.products.GetBySlug(ctx, productSlug, repositories.ExcludeDeleted)
	if err != nil {
		return nil, translateNotFound(err, MsgProductNotFound)
	}
	views, err := s.withRatings(ctx, []models.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CatalogService) withRatings(ctx context.Context, products []models.Product) ([]ProductView, error) {
	return attachRatings(ctx, s.products, products)
}

// attachRatings pairs every product with its average rating; unrated products get 0.
func attachRatings(ctx context.Context, repo repositories.ProductRepository, products []models.Product) ([]ProductView, error) {
	ids := make([]string, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	ratings, err := repo.AverageRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i := range products {
		views[i] = ProductView{Product: products[i], Rating: ratings[products[i].ID]}
	}
	return views, nil
}

// translateNotFound replaces a repository miss with a user facing 404 and passes other errors through.
func translateNotFound(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound(message)
	}
	return err
}
