package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHandler handles the authenticated user's shipping addresses and order history.
type ProfileHandler struct {
	shipping   *services.ShippingService
	checkout   *services.CheckoutService
	validate   *validator.Validate
	serializer Serializer
	log        *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(shipping *services.ShippingService, checkout *services.CheckoutService, serializer Serializer, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		shipping:   shipping,
		checkout:   checkout,
		validate:   newValidator(),
		serializer: serializer,
		log:        log,
	}
}

// RegisterRoutes registers the profile routes. Every profile route requires authentication.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	profileRoutes := router.Group("/profiles", requireAuth)
	profileRoutes.Get("/shipping_addresses", h.HandleListAddresses)
	profileRoutes.Post("/shipping_addresses", h.HandleCreateAddress)
	profileRoutes.Get("/shipping_addresses/:id", h.HandleGetAddress)
	profileRoutes.Put("/shipping_addresses/:id", h.HandleUpdateAddress)
	profileRoutes.Delete("/shipping_addresses/:id", h.HandleDeleteAddress)
	profileRoutes.Get("/orders", h.HandleListOrders)
}

func (h *ProfileHandler) HandleListAddresses(c *fiber.Ctx) error {
	addresses, err := h.shipping.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.ShippingAddresses(addresses))
}

func (h *ProfileHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var in models.ShippingDetails
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	address, err := h.shipping.Create(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Shipping address created successfully",
		"data":    h.serializer.ShippingAddress(address),
	})
}

func (h *ProfileHandler) HandleGetAddress(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", services.MsgShippingAddressNotFound)
	if err != nil {
		return respondError(c, h.log, err)
	}
	address, err := h.shipping.Get(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.ShippingAddress(address))
}

func (h *ProfileHandler) HandleUpdateAddress(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", services.MsgShippingAddressNotFound)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var in models.ShippingDetails
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	address, err := h.shipping.Update(c.UserContext(), middleware.UserID(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Shipping address updated successfully",
		"data":    h.serializer.ShippingAddress(address),
	})
}

func (h *ProfileHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", services.MsgShippingAddressNotFound)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.shipping.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Shipping address deleted successfully"})
}

// HandleListOrders returns the user's orders with their items.
func (h *ProfileHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.checkout.Orders(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Orders(orders))
}
