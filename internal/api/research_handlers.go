package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/middleware"
	"github.com/lizsears/contentcal/internal/models"
	"github.com/lizsears/contentcal/internal/research"
)

type createResearchURLRequest struct {
	URL             string `json:"url" validate:"required,url"`
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Category        string `json:"category" validate:"required"`
	ScrapeFrequency string `json:"scrapeFrequency"`
	Active          *bool  `json:"isActive"`
}

type updateResearchURLRequest struct {
	ID              string  `json:"id" validate:"required,uuid4"`
	URL             *string `json:"url" validate:"omitempty,url"`
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	Category        *string `json:"category"`
	ScrapeFrequency *string `json:"scrapeFrequency"`
	Active          *bool   `json:"isActive"`
}

type scrapeNowRequest struct {
	URLIDs []string `json:"urlIds" validate:"omitempty,dive,uuid4"`
}

// ListResearchURLs handles GET /api/v1/research-urls
func (h *Handlers) ListResearchURLs(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	urls, err := h.research.ListURLs(c.Context(), userID)
	if err != nil {
		logger.WithError(err).Msg("failed to list research urls")
		return internalError(c)
	}
	return c.JSON(fiber.Map{"urls": urls, "count": len(urls)})
}

// CreateResearchURL handles POST /api/v1/research-urls
func (h *Handlers) CreateResearchURL(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req createResearchURLRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	category := models.ResearchCategory(req.Category)
	if !category.Valid() {
		return badRequest(c, "invalid category")
	}

	frequency := models.FrequencyWeekly
	if req.ScrapeFrequency != "" {
		frequency = models.ScrapeFrequency(req.ScrapeFrequency)
		if !frequency.Valid() {
			return badRequest(c, "invalid scrapeFrequency")
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	url := &models.ResearchURL{
		UserID:          userID,
		URL:             req.URL,
		Title:           req.Title,
		Category:        category,
		ScrapeFrequency: frequency,
		IsActive:        active,
	}
	if err := h.research.CreateURL(c.Context(), url); err != nil {
		logger.WithError(err).Msg("failed to create research url")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(url)
}

// UpdateResearchURL handles PATCH /api/v1/research-urls
func (h *Handlers) UpdateResearchURL(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req updateResearchURLRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	update := models.ResearchURLUpdate{
		URL:      req.URL,
		Title:    req.Title,
		IsActive: req.Active,
	}
	if req.Category != nil {
		cat := models.ResearchCategory(*req.Category)
		if !cat.Valid() {
			return badRequest(c, "invalid category")
		}
		update.Category = &cat
	}
	if req.ScrapeFrequency != nil {
		freq := models.ScrapeFrequency(*req.ScrapeFrequency)
		if !freq.Valid() {
			return badRequest(c, "invalid scrapeFrequency")
		}
		update.ScrapeFrequency = &freq
	}

	url, err := h.research.UpdateURL(c.Context(), userID, req.ID, update)
	if err != nil {
		logger.WithError(err).Msg("failed to update research url")
		return internalError(c)
	}
	if url == nil {
		return notFound(c, "Research URL not found")
	}
	return c.JSON(url)
}

// DeleteResearchURL handles DELETE /api/v1/research-urls?id=...
func (h *Handlers) DeleteResearchURL(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id := c.Query("id")
	if id == "" {
		return badRequest(c, "id query parameter is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return badRequest(c, "invalid research url id")
	}

	if err := h.research.DeleteURL(c.Context(), userID, id); err != nil {
		logger.WithError(err).Msg("failed to delete research url")
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ScrapeNow handles POST /api/v1/research-urls/scrape-now. With urlIds it
// scrapes only those sources, otherwise every active one.
func (h *Handlers) ScrapeNow(c *fiber.Ctx) error {
	var req scrapeNowRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if len(req.URLIDs) == 0 {
		result, err := h.scraper.ScrapeAllActive(c.Context())
		if err != nil {
			logger.WithError(err).Msg("scrape-now failed")
			return internalError(c)
		}
		return c.JSON(result)
	}

	result := &research.BatchResult{}
	for _, id := range req.URLIDs {
		if _, err := h.scraper.ScrapeAndStore(c.Context(), id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, id+": "+err.Error())
			continue
		}
		result.Scraped++
	}
	return c.JSON(result)
}
