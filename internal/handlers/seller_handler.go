package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SellerHandler handles seller onboarding, seller pages and the seller's product management.
type SellerHandler struct {
	sellers    *services.SellerService
	catalog    *services.CatalogService
	validate   *validator.Validate
	serializer Serializer
	log        *zap.Logger
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(sellers *services.SellerService, catalog *services.CatalogService, serializer Serializer, log *zap.Logger) *SellerHandler {
	return &SellerHandler{
		sellers:    sellers,
		catalog:    catalog,
		validate:   newValidator(),
		serializer: serializer,
		log:        log,
	}
}

// RegisterRoutes registers the seller routes with the Fiber app.
func (h *SellerHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	sellerRoutes := router.Group("/sellers")
	sellerRoutes.Post("/", requireAuth, h.HandleRegister)
	sellerRoutes.Post("/products", requireAuth, h.HandleCreateProduct)
	sellerRoutes.Put("/products/:slug", requireAuth, h.HandleUpdateProduct)
	sellerRoutes.Delete("/products/:slug", requireAuth, h.HandleDeleteProduct)
	sellerRoutes.Get("/:slug", h.HandleProducts)
}

// HandleRegister turns the authenticated user into a seller.
func (h *SellerHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.SellerInput
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	seller, err := h.sellers.Register(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.serializer.Seller(seller))
}

// HandleProducts returns the live products of a seller.
func (h *SellerHandler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.catalog.SellerProducts(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Products(products))
}

func (h *SellerHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	product, err := h.sellers.CreateProduct(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.serializer.Product(product))
}

func (h *SellerHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	product, err := h.sellers.UpdateProduct(c.UserContext(), middleware.UserID(c), c.Params("slug"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Product(product))
}

func (h *SellerHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.sellers.DeleteProduct(c.UserContext(), middleware.UserID(c), c.Params("slug")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
