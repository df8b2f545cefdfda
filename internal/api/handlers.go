package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/lizsears/contentcal/internal/calendar"
	"github.com/lizsears/contentcal/internal/config"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/generation"
	"github.com/lizsears/contentcal/internal/research"
)

// WeekGenerator runs the weekly generation job.
type WeekGenerator interface {
	Run(ctx context.Context, userID string, params generation.Params) (*generation.Result, error)
}

// Handlers carries every dependency the routes need. All clients are
// constructed at startup and passed in; nothing is lazily initialized.
type Handlers struct {
	config   *config.Config
	contents database.ContentRepository
	research database.ResearchRepository
	settings database.SettingsRepository
	runner   WeekGenerator
	scraper  research.ScrapeRunner
	calendar calendar.Client
	validate *validator.Validate
}

func NewHandlers(
	cfg *config.Config,
	contents database.ContentRepository,
	researchRepo database.ResearchRepository,
	settings database.SettingsRepository,
	runner WeekGenerator,
	scraper research.ScrapeRunner,
	calendarClient calendar.Client,
) *Handlers {
	return &Handlers{
		config:   cfg,
		contents: contents,
		research: researchRepo,
		settings: settings,
		runner:   runner,
		scraper:  scraper,
		calendar: calendarClient,
		validate: validator.New(),
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Shared JSON error helpers keeping the taxonomy in one place.

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "An internal error occurred"})
}

func serviceUnavailable(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": msg})
}
