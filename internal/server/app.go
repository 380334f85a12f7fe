// Package server assembles the fixture backend: a Fiber app exposing the
// storefront REST contract over pluggable repositories, used for local
// development and end-to-end testing of the client.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"vitrine/internal/server/handlers"
	"vitrine/internal/server/middleware"
	"vitrine/internal/server/repositories"
	"vitrine/internal/server/services"
)

// Repositories bundles the storage implementations the app runs on.
type Repositories struct {
	Users    repositories.UserRepository
	Products repositories.ProductRepository
	Carts    repositories.CartRepository
	Orders   repositories.OrderRepository
}

// MemoryRepositories returns an in-memory repository set, used by tests and
// by the devserver when no database is configured.
func MemoryRepositories() Repositories {
	return Repositories{
		Users:    repositories.NewMemoryUserRepository(),
		Products: repositories.NewMemoryProductRepository(),
		Carts:    repositories.NewMemoryCartRepository(),
		Orders:   repositories.NewMemoryOrderRepository(),
	}
}

// GORMRepositories returns a repository set backed by the given database.
func GORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    repositories.NewGORMUserRepository(db),
		Products: repositories.NewGORMProductRepository(db),
		Carts:    repositories.NewGORMCartRepository(db),
		Orders:   repositories.NewGORMOrderRepository(db),
	}
}

// New builds the Fiber app with all routes registered. The publisher may be
// nil when no message broker is configured.
func New(repos Repositories, jwtSecret string, publisher services.OrderEventPublisher) *fiber.App {
	authService := services.NewAuthService(repos.Users, jwtSecret)
	productService := services.NewProductService(repos.Products)
	cartService := services.NewCartService(repos.Carts, repos.Products)
	orderService := services.NewOrderService(repos.Orders, repos.Products, repos.Carts, publisher)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	requireAuth := middleware.AuthRequired(authService)
	requireAdmin := middleware.AdminRequired()

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, requireAuth, requireAdmin)
	cartHandler.RegisterRoutes(api, requireAuth)
	orderHandler.RegisterRoutes(api, requireAuth, requireAdmin)

	return app
}
