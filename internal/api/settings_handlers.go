package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/middleware"
)

type updateSettingsRequest struct {
	WeeklyGenerationDay  *int      `json:"weeklyGenerationDay" validate:"omitempty,min=0,max=6"`
	WeeklyGenerationTime *string   `json:"weeklyGenerationTime" validate:"omitempty,len=5"`
	AutoApproveEnabled   *bool     `json:"autoApproveEnabled"`
	NotificationEmail    *string   `json:"notificationEmail" validate:"omitempty,email"`
	ForbiddenPhrases     *[]string `json:"forbiddenPhrases"`
}

// GetSettings handles GET /api/v1/settings
func (h *Handlers) GetSettings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	settings, err := h.settings.Get(c.Context(), userID)
	if err != nil {
		logger.WithError(err).Msg("failed to load settings")
		return internalError(c)
	}

	phrases, err := h.settings.ForbiddenPhrases(c.Context(), userID)
	if err != nil {
		logger.WithError(err).Msg("failed to load forbidden phrases")
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"settings":                settings,
		"forbiddenPhrases":        phrases,
		"googleCalendarConnected": settings.GoogleRefreshToken != "",
	})
}

// UpdateSettings handles PUT /api/v1/settings. Omitted fields keep their
// current values; forbiddenPhrases replaces the whole custom list.
func (h *Handlers) UpdateSettings(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	settings, err := h.settings.Get(c.Context(), userID)
	if err != nil {
		logger.WithError(err).Msg("failed to load settings")
		return internalError(c)
	}

	if req.WeeklyGenerationDay != nil {
		settings.WeeklyGenerationDay = *req.WeeklyGenerationDay
	}
	if req.WeeklyGenerationTime != nil {
		settings.WeeklyGenerationTime = *req.WeeklyGenerationTime
	}
	if req.AutoApproveEnabled != nil {
		settings.AutoApproveEnabled = *req.AutoApproveEnabled
	}
	if req.NotificationEmail != nil {
		settings.NotificationEmail = *req.NotificationEmail
	}

	if err := h.settings.Upsert(c.Context(), settings); err != nil {
		logger.WithError(err).Msg("failed to save settings")
		return internalError(c)
	}

	if req.ForbiddenPhrases != nil {
		if err := h.settings.ReplaceForbiddenPhrases(c.Context(), userID, *req.ForbiddenPhrases); err != nil {
			logger.WithError(err).Msg("failed to save forbidden phrases")
			return internalError(c)
		}
	}

	phrases, err := h.settings.ForbiddenPhrases(c.Context(), userID)
	if err != nil {
		logger.WithError(err).Msg("failed to reload forbidden phrases")
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"settings":                settings,
		"forbiddenPhrases":        phrases,
		"googleCalendarConnected": settings.GoogleRefreshToken != "",
	})
}
