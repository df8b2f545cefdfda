package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lizsears/contentcal/internal/generation"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/middleware"
	"github.com/lizsears/contentcal/internal/models"
)

type generateWeekRequest struct {
	StartDate     string   `json:"startDate" validate:"required"`
	Platforms     []string `json:"platforms"`
	ResearchFirst *bool    `json:"researchFirst"`
	AutoApprove   bool     `json:"autoApprove"`
}

// GenerateWeek handles POST /api/v1/generate-week. The call is synchronous;
// the response carries the finished job result.
func (h *Handlers) GenerateWeek(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req generateWeekRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if _, err := time.Parse(publishDateLayout, req.StartDate); err != nil {
		return badRequest(c, "startDate must be YYYY-MM-DD")
	}

	platforms := make([]models.Platform, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		platform := models.Platform(p)
		if !platform.Valid() {
			return badRequest(c, "invalid platform: "+p)
		}
		platforms = append(platforms, platform)
	}

	researchFirst := true
	if req.ResearchFirst != nil {
		researchFirst = *req.ResearchFirst
	}

	params := generation.Params{
		StartDate:     req.StartDate,
		Platforms:     platforms,
		ResearchFirst: researchFirst,
		AutoApprove:   req.AutoApprove,
	}

	result, err := h.runner.Run(c.Context(), userID, params)
	if err != nil {
		logger.WithError(err).Msg("generation job failed to start")
		return internalError(c)
	}
	return c.JSON(result)
}
