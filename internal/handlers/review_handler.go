package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	reviews    *services.ReviewService
	validate   *validator.Validate
	serializer Serializer
	log        *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService, serializer Serializer, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:    reviews,
		validate:   newValidator(),
		serializer: serializer,
		log:        log,
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/reviews/:slug", h.HandleList)
	router.Post("/reviews/:slug", requireAuth, h.HandleCreate)

	detail := router.Group("/review/detail")
	detail.Get("/:id", h.HandleGet)
	detail.Put("/:id", requireAuth, h.HandleUpdate)
	detail.Delete("/:id", requireAuth, h.HandleDelete)
}

// HandleList returns the reviews of a product.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	reviews, err := h.reviews.ProductReviews(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Reviews(reviews))
}

// HandleCreate stores a review for a product the user has ordered.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := middleware.UserID(c)

	if _, err := h.reviews.CheckCanReview(ctx, userID, c.Params("slug")); err != nil {
		return respondError(c, h.log, err)
	}

	var in services.ReviewInput
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	review, err := h.reviews.Create(ctx, userID, c.Params("slug"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.serializer.Review(review))
}

func (h *ReviewHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", services.MsgReviewNotFound)
	if err != nil {
		return respondError(c, h.log, err)
	}
	review, err := h.reviews.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Review(review))
}

func (h *ReviewHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", services.MsgReviewNotFound)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var in services.ReviewInput
	if err := bind(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}

	review, err := h.reviews.Update(c.UserContext(), middleware.UserID(c), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Review(review))
}

func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id", services.MsgReviewNotFound)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.reviews.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": services.MsgReviewDeleted})
}
