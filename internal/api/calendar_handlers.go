package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lizsears/contentcal/internal/calendar"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/middleware"
)

type syncCalendarRequest struct {
	ContentID   string `json:"contentId" validate:"required,uuid4"`
	AccessToken string `json:"accessToken"`
}

// SyncCalendar handles POST /api/v1/sync-calendar. Token preference is the
// request's access token, then the stored refresh token. The item is marked
// scheduled only after the event exists.
func (h *Handlers) SyncCalendar(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if !h.config.GoogleCalendarConfigured() {
		return serviceUnavailable(c, "Google Calendar is not configured")
	}

	var req syncCalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	item, err := h.contents.GetByID(c.Context(), userID, req.ContentID)
	if err != nil {
		logger.WithError(err).Msg("failed to load content for calendar sync")
		return internalError(c)
	}
	if item == nil {
		return notFound(c, "Content not found")
	}

	params := calendar.EventParams{
		Title:       item.Topic,
		Description: item.GeneratedText,
		Date:        item.PublishDate,
		Time:        item.PublishTime,
		Platform:    string(item.Platform),
	}

	var event *calendar.Event
	if req.AccessToken != "" {
		event, err = h.calendar.CreateEventWithAccessToken(c.Context(), req.AccessToken, params)
	} else {
		settings, serr := h.settings.Get(c.Context(), userID)
		if serr != nil {
			logger.WithError(serr).Msg("failed to load settings for calendar sync")
			return internalError(c)
		}
		if settings.GoogleRefreshToken == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No Google Calendar access. Connect Google Calendar in Settings.",
			})
		}
		event, err = h.calendar.CreateEventWithRefreshToken(c.Context(), settings.GoogleRefreshToken, params)
	}
	if err != nil {
		logger.WithError(err).Msg("failed to create calendar event")
		return internalError(c)
	}

	if err := h.contents.MarkScheduled(c.Context(), userID, item.ID, event.EventID); err != nil {
		logger.WithError(err).Msg("failed to mark content scheduled")
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"calendarEventId": event.EventID,
		"calendarUrl":     event.HTMLLink,
	})
}

// GoogleAuth handles GET /api/v1/auth/google. Redirects the browser into the
// OAuth consent flow with the caller's user id as state.
func (h *Handlers) GoogleAuth(c *fiber.Ctx) error {
	if !h.config.GoogleCalendarConfigured() {
		return serviceUnavailable(c, "Google Calendar is not configured")
	}
	userID := middleware.UserID(c)
	return c.Redirect(h.calendar.AuthURL(userID), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/v1/auth/google/callback. Google redirects
// here without our auth header, so the user id rides in the state parameter.
func (h *Handlers) GoogleCallback(c *fiber.Ctx) error {
	if !h.config.GoogleCalendarConfigured() {
		return serviceUnavailable(c, "Google Calendar is not configured")
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Redirect(h.config.SiteURL+"/settings?google=error", fiber.StatusTemporaryRedirect)
	}

	refreshToken, err := h.calendar.Exchange(c.Context(), code)
	if err != nil {
		logger.WithError(err).Msg("google oauth exchange failed")
		return c.Redirect(h.config.SiteURL+"/settings?google=error", fiber.StatusTemporaryRedirect)
	}

	if err := h.settings.StoreRefreshToken(c.Context(), state, refreshToken); err != nil {
		logger.WithError(err).Msg("failed to store google refresh token")
		return c.Redirect(h.config.SiteURL+"/settings?google=error", fiber.StatusTemporaryRedirect)
	}

	return c.Redirect(h.config.SiteURL+"/settings?google=connected", fiber.StatusTemporaryRedirect)
}
