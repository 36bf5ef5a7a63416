package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/trainboard/internal/pkg/metrics"
)

// NewApp builds the status server: liveness, readiness and Prometheus metrics.
func NewApp(deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "trainboard status",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	SetupRoutes(app, deps)
	return app
}

// SetupRoutes registers the status routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Use(AccessLogMiddleware())

	app.Get("/metrics", metrics.Handler())
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	app.Use(func(c *fiber.Ctx) error {
		return errNotFound(c, "no such endpoint: "+c.Path())
	})
}
