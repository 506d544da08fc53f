package handlers

import (
	"storefront/internal/apperr"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests that turn the cart into an order.
type CheckoutHandler struct {
	checkout   *services.CheckoutService
	validate   *validator.Validate
	serializer Serializer
	log        *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService, serializer Serializer, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:   checkout,
		validate:   newValidator(),
		serializer: serializer,
		log:        log,
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Post("/checkout", requireAuth, h.HandleCheckout)
}

// HandleCheckout creates an order from the cart, shipped to a saved address or to inline details.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := middleware.UserID(c)

	if err := h.checkout.EnsureCart(ctx, userID); err != nil {
		return respondError(c, h.log, err)
	}

	details, err := h.shippingDetails(c, userID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	order, err := h.checkout.Checkout(ctx, userID, details)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Checkout Successful",
		"item":    h.serializer.Order(order),
	})
}

func (h *CheckoutHandler) shippingDetails(c *fiber.Ctx, userID string) (models.ShippingDetails, error) {
	var in services.CheckoutInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return models.ShippingDetails{}, apperr.Invalid("Invalid request body", nil)
		}
	}

	if in.ShippingID != "" {
		if err := h.validate.Struct(struct {
			ShippingID string `json:"shipping_id" validate:"uuid"`
		}{in.ShippingID}); err != nil {
			return models.ShippingDetails{}, validationError(err)
		}
		return h.checkout.ShippingDetails(c.UserContext(), userID, in.ShippingID)
	}

	if err := h.validate.Struct(in.ShippingDetails); err != nil {
		return models.ShippingDetails{}, validationError(err)
	}
	return in.ShippingDetails, nil
}
