package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	cart       *services.CartService
	validate   *validator.Validate
	serializer Serializer
	log        *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService, serializer Serializer, log *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:       cart,
		validate:   newValidator(),
		serializer: serializer,
		log:        log,
	}
}

// RegisterRoutes registers the cart routes. Every cart route requires authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	cartRoutes := router.Group("/cart", requireAuth)
	cartRoutes.Get("/", h.HandleList)
	cartRoutes.Post("/", h.HandleToggle)
}

// HandleList returns the items in the cart.
func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.cart.Items(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.OrderItems(items))
}

// HandleToggle adds, updates or removes a cart item depending on the requested quantity.
func (h *CartHandler) HandleToggle(c *fiber.Ctx) error {
	var in services.ToggleCartInput
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	item, outcome, err := h.cart.Toggle(c.UserContext(), middleware.UserID(c), in.Slug, *in.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	status := fiber.StatusOK
	if outcome == services.CartItemAdded {
		status = fiber.StatusCreated
	}
	var data any
	if item != nil {
		data = h.serializer.OrderItem(item)
	}
	return c.Status(status).JSON(fiber.Map{
		"message": outcome.Message(),
		"item":    data,
	})
}
