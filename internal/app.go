package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/boardkit/reversi/internal/config"
	"github.com/boardkit/reversi/internal/middleware"
	"github.com/boardkit/reversi/internal/routes"
	"github.com/boardkit/reversi/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
)

// NewRouter builds the Fiber app with all middleware and routes. Services
// and config are injected into the request context.
func NewRouter(svc *services.Services, cfg *config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", svc)
		c.Locals("config", cfg)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}

// SetupApp loads configuration, connects to external services and builds the
// Fiber app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	svc, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	return NewRouter(svc, cfg), cfg
}
