package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/middleware"
	"github.com/lizsears/contentcal/internal/models"
)

type createContentRequest struct {
	Platform      string `json:"platform" validate:"required"`
	ContentType   string `json:"contentType" validate:"required"`
	Topic         string `json:"topic" validate:"required,min=1,max=500"`
	GeneratedText string `json:"generatedText"`
	PublishDate   string `json:"publishDate" validate:"required"`
	PublishTime   string `json:"publishTime" validate:"required"`
	Status        string `json:"status"`
	Owner         string `json:"owner" validate:"required"`
}

type updateContentRequest struct {
	ID            string  `json:"id" validate:"required,uuid4"`
	Topic         *string `json:"topic"`
	GeneratedText *string `json:"generatedText"`
	PublishDate   *string `json:"publishDate"`
	PublishTime   *string `json:"publishTime"`
	Status        *string `json:"status"`
	Owner         *string `json:"owner"`
}

type approveContentRequest struct {
	ContentID string `json:"contentId" validate:"required,uuid4"`
}

type batchApproveRequest struct {
	ContentIDs []string `json:"contentIds" validate:"required,min=1,dive,uuid4"`
}

const publishDateLayout = "2006-01-02"

// ListContent handles GET /api/v1/content
func (h *Handlers) ListContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	filter := models.ContentFilter{Limit: 50}

	if status := c.Query("status"); status != "" {
		s := models.ContentStatus(status)
		if !s.Valid() {
			return badRequest(c, "invalid status filter")
		}
		filter.Status = s
	}
	if platform := c.Query("platform"); platform != "" {
		p := models.Platform(platform)
		if !p.Valid() {
			return badRequest(c, "invalid platform filter")
		}
		filter.Platform = p
	}
	if start := c.Query("startDate"); start != "" {
		if _, err := time.Parse(publishDateLayout, start); err != nil {
			return badRequest(c, "startDate must be YYYY-MM-DD")
		}
		filter.StartDate = start
	}
	if end := c.Query("endDate"); end != "" {
		if _, err := time.Parse(publishDateLayout, end); err != nil {
			return badRequest(c, "endDate must be YYYY-MM-DD")
		}
		filter.EndDate = end
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 100 {
			return badRequest(c, "limit must be between 1 and 100")
		}
		filter.Limit = n
	}
	if offset := c.Query("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return badRequest(c, "offset must be non-negative")
		}
		filter.Offset = n
	}

	items, err := h.contents.List(c.Context(), userID, filter)
	if err != nil {
		logger.WithError(err).Msg("failed to list content")
		return internalError(c)
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// GetContent handles GET /api/v1/content/:id
func (h *Handlers) GetContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return badRequest(c, "invalid content id")
	}

	item, err := h.contents.GetByID(c.Context(), userID, id)
	if err != nil {
		logger.WithError(err).Msg("failed to get content")
		return internalError(c)
	}
	if item == nil {
		return notFound(c, "Content not found")
	}
	return c.JSON(item)
}

// CreateContent handles POST /api/v1/content
func (h *Handlers) CreateContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req createContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	platform := models.Platform(req.Platform)
	if !platform.Valid() {
		return badRequest(c, "invalid platform")
	}
	contentType := models.ContentType(req.ContentType)
	if !contentType.Valid() {
		return badRequest(c, "invalid contentType")
	}
	if _, err := time.Parse(publishDateLayout, req.PublishDate); err != nil {
		return badRequest(c, "publishDate must be YYYY-MM-DD")
	}

	status := models.StatusDraft
	if req.Status != "" {
		status = models.ContentStatus(req.Status)
		if !status.Valid() {
			return badRequest(c, "invalid status")
		}
	}

	item := &models.ContentItem{
		UserID:        userID,
		Platform:      platform,
		ContentType:   contentType,
		Topic:         req.Topic,
		GeneratedText: req.GeneratedText,
		PublishDate:   req.PublishDate,
		PublishTime:   req.PublishTime,
		Status:        status,
		Owner:         req.Owner,
	}
	if err := h.contents.Create(c.Context(), item); err != nil {
		logger.WithError(err).Msg("failed to create content")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateContent handles PATCH /api/v1/content
func (h *Handlers) UpdateContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	update := models.ContentUpdate{
		Topic:         req.Topic,
		GeneratedText: req.GeneratedText,
		PublishDate:   req.PublishDate,
		PublishTime:   req.PublishTime,
		Owner:         req.Owner,
	}
	if req.PublishDate != nil {
		if _, err := time.Parse(publishDateLayout, *req.PublishDate); err != nil {
			return badRequest(c, "publishDate must be YYYY-MM-DD")
		}
	}
	if req.Status != nil {
		s := models.ContentStatus(*req.Status)
		if !s.Valid() {
			return badRequest(c, "invalid status")
		}
		update.Status = &s
	}

	item, err := h.contents.Update(c.Context(), userID, req.ID, update)
	if err != nil {
		logger.WithError(err).Msg("failed to update content")
		return internalError(c)
	}
	if item == nil {
		return notFound(c, "Content not found")
	}
	return c.JSON(item)
}

// DeleteContent handles DELETE /api/v1/content?id=...
func (h *Handlers) DeleteContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id := c.Query("id")
	if id == "" {
		return badRequest(c, "id query parameter is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return badRequest(c, "invalid content id")
	}

	if err := h.contents.Delete(c.Context(), userID, id); err != nil {
		logger.WithError(err).Msg("failed to delete content")
		return internalError(c)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ApproveContent handles POST /api/v1/approve-content. Approval only
// moves items out of draft; anything else is reported as not found.
func (h *Handlers) ApproveContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req approveContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	item, err := h.contents.Approve(c.Context(), userID, req.ContentID)
	if err != nil {
		logger.WithError(err).Msg("failed to approve content")
		return internalError(c)
	}
	if item == nil {
		return notFound(c, "Content not found or not in draft status")
	}
	return c.JSON(fiber.Map{"success": true, "item": item})
}

// BatchApproveContent handles POST /api/v1/content/batch-approve
func (h *Handlers) BatchApproveContent(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req batchApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	type batchResult struct {
		ID       string `json:"id"`
		Approved bool   `json:"approved"`
		Error    string `json:"error,omitempty"`
	}

	results := make([]batchResult, 0, len(req.ContentIDs))
	approved := 0
	for _, id := range req.ContentIDs {
		item, err := h.contents.Approve(c.Context(), userID, id)
		switch {
		case err != nil:
			logger.WithError(err).Msg("failed to approve content in batch")
			results = append(results, batchResult{ID: id, Error: "internal error"})
		case item == nil:
			results = append(results, batchResult{ID: id, Error: "not found or not in draft status"})
		default:
			approved++
			results = append(results, batchResult{ID: id, Approved: true})
		}
	}

	return c.JSON(fiber.Map{
		"approved": approved,
		"failed":   len(req.ContentIDs) - approved,
		"results":  results,
	})
}
