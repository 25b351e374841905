// Package api wires the HTTP routes to their handlers.
package api

import (
	"github.com/gofiber/fiber/v2"

	"seoforge/internal/api/handlers"
	"seoforge/internal/service/generator"
	"seoforge/internal/writer"
)

// SetupRoutes registers all API routes on the app.
func SetupRoutes(app *fiber.App, gen *generator.Generator, w *writer.Writer) {
	h := handlers.NewGenerationHandler(gen, w)

	api := app.Group("/api")
	api.Post("/articles", h.GenerateArticle)
	api.Post("/keywords", h.GenerateKeywords)
	api.Get("/models", h.ListModels)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
