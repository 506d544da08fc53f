package handlers

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	catalog    *services.CatalogService
	validate   *validator.Validate
	serializer Serializer
	mediaRoot  string
	log        *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler. Uploaded images are written below mediaRoot.
func NewCategoryHandler(catalog *services.CatalogService, serializer Serializer, mediaRoot string, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog:    catalog,
		validate:   newValidator(),
		serializer: serializer,
		mediaRoot:  mediaRoot,
		log:        log,
	}
}

// RegisterRoutes registers the category routes. Creating a category requires a staff user.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", requireAuth, middleware.StaffRequired(), h.HandleCreate)
	categoryRoutes.Get("/:slug", h.HandleProducts)
}

// HandleList returns every category.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Categories(categories))
}

// HandleCreate creates a category from a JSON body or a multipart form with an image file.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return respondError(c, h.log, apperr.Invalid("Invalid request body", nil))
	}

	if file, err := c.FormFile("image"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !imageExtensions[ext] {
			return respondError(c, h.log, apperr.Invalid("Validation failed", map[string]string{
				"image": "Upload a valid image.",
			}))
		}
		rel := path.Join("categories", uuid.NewString()+ext)
		dst := filepath.Join(h.mediaRoot, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return respondError(c, h.log, fmt.Errorf("failed to create media directory: %w", err))
		}
		if err := c.SaveFile(file, dst); err != nil {
			return respondError(c, h.log, fmt.Errorf("failed to store category image: %w", err))
		}
		in.Image = rel
	}

	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, validationError(err))
	}

	category, err := h.catalog.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.serializer.Category(category))
}

// HandleProducts returns the live products of a category.
func (h *CategoryHandler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.catalog.CategoryProducts(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.serializer.Products(products))
}
