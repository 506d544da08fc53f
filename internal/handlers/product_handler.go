package handlers

import (
	"storefront/internal/apperr"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the public product catalog.
type ProductHandler struct {
	catalog    *services.CatalogService
	serializer Serializer
	log        *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService, serializer Serializer, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:    catalog,
		serializer: serializer,
		log:        log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/:slug", h.HandleDetail)
}

// HandleList returns one page of products, filtered by max_price, min_price, in_stock and created_at.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	var params services.ProductListParams
	if err := c.QueryParser(&params); err != nil {
		return respondError(c, h.log, apperr.Invalid("Invalid query parameters", nil))
	}

	page, err := h.catalog.ListProducts(c.UserContext(), params)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.ProductPage(page))
}

// HandleDetail returns a single product with its rating.
func (h *ProductHandler) HandleDetail(c *fiber.Ctx) error {
	product, err := h.catalog.ProductDetail(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Product(product))
}
