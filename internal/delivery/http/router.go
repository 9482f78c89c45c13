package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check and metrics
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes
	api := app.Group("/api")
	{
		api.Get("/predict", handler.Predict)
		api.Get("/wards", handler.GetWards)
		api.Get("/historical/:ward_id", handler.GetHistorical)
		api.Get("/future/:ward_id", handler.GetFuture)
		api.Get("/tips/:ward_id", handler.GetTips)
		api.Get("/search", handler.Search)
	}
}
