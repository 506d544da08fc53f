// Package server wires repositories, services and handlers into a Fiber application.
package server

import (
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the external resources the application runs on. Publisher may be nil, in which case
// order events are not sent.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Publisher services.EventPublisher
	Log       *zap.Logger
}

// New builds the HTTP application with every route registered.
func New(deps Deps) *fiber.App {
	cfg := deps.Config
	log := deps.Log

	app := fiber.New(fiber.Config{
		AppName:       "storefront",
		StrictRouting: false,
		BodyLimit:     cfg.App.BodyLimitMB * 1024 * 1024,
	})

	app.Use(recover.New())
	if !cfg.IsProduction() {
		app.Use(fiberlogger.New())
	}
	app.Static(cfg.Media.URL, cfg.Media.Root)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	sellerRepo := repositories.NewGORMSellerRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	reviewRepo := repositories.NewGORMReviewRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	addressRepo := repositories.NewGORMShippingAddressRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL, log)
	catalogService := services.NewCatalogService(categoryRepo, sellerRepo, productRepo, cfg.Catalog.PageSize, log)
	sellerService := services.NewSellerService(sellerRepo, categoryRepo, productRepo, log)
	cartService := services.NewCartService(orderRepo, productRepo, log)
	checkoutService := services.NewCheckoutService(orderRepo, addressRepo, deps.Publisher, log)
	reviewService := services.NewReviewService(reviewRepo, productRepo, orderRepo, log)
	shippingService := services.NewShippingService(addressRepo, log)

	// --- Handlers ---
	serializer := handlers.Serializer{MediaURL: cfg.Media.URL}
	httpLog := log.Named("http")
	requireAuth := middleware.AuthRequired(authService, httpLog)

	handlers.NewAuthHandler(authService, serializer, httpLog).RegisterRoutes(app)
	handlers.NewCategoryHandler(catalogService, serializer, cfg.Media.Root, httpLog).RegisterRoutes(app, requireAuth)
	handlers.NewSellerHandler(sellerService, catalogService, serializer, httpLog).RegisterRoutes(app, requireAuth)
	handlers.NewProductHandler(catalogService, serializer, httpLog).RegisterRoutes(app)
	handlers.NewCartHandler(cartService, serializer, httpLog).RegisterRoutes(app, requireAuth)
	handlers.NewCheckoutHandler(checkoutService, serializer, httpLog).RegisterRoutes(app, requireAuth)
	handlers.NewReviewHandler(reviewService, serializer, httpLog).RegisterRoutes(app, requireAuth)
	handlers.NewProfileHandler(shippingService, checkoutService, serializer, httpLog).RegisterRoutes(app, requireAuth)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if err := database.Ping(deps.DB); err != nil {
			log.Warn("health check: database unreachable", zap.Error(err))
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	return app
}
