package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lizsears/contentcal/internal/middleware"
)

// SetupRoutes registers all API routes on the app. Everything under /api/v1
// requires an API key except the health check and the OAuth callback, which
// Google calls without our header.
func SetupRoutes(app *fiber.App, h *Handlers, resolve middleware.KeyResolver) {
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	v1 := app.Group("/api/v1")

	v1.Get("/health", h.HealthCheck)
	v1.Get("/auth/google/callback", h.GoogleCallback)

	auth := v1.Group("", middleware.RequireUser(resolve))

	auth.Get("/content", h.ListContent)
	auth.Post("/content", h.CreateContent)
	auth.Patch("/content", h.UpdateContent)
	auth.Delete("/content", h.DeleteContent)
	auth.Get("/content/:id", h.GetContent)
	auth.Post("/content/batch-approve", h.BatchApproveContent)
	auth.Post("/approve-content", h.ApproveContent)

	auth.Get("/research-urls", h.ListResearchURLs)
	auth.Post("/research-urls", h.CreateResearchURL)
	auth.Patch("/research-urls", h.UpdateResearchURL)
	auth.Delete("/research-urls", h.DeleteResearchURL)
	auth.Post("/research-urls/scrape-now", h.ScrapeNow)

	auth.Get("/settings", h.GetSettings)
	auth.Put("/settings", h.UpdateSettings)

	auth.Post("/generate-week", h.GenerateWeek)

	auth.Post("/sync-calendar", h.SyncCalendar)
	auth.Get("/auth/google", h.GoogleAuth)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})
}
