package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lizsears/contentcal/internal/config"
	"github.com/lizsears/contentcal/internal/models"
)

func calendarConfig() *config.Config {
	return &config.Config{
		SiteURL:            "http://localhost:3000",
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleCalendarID:   "primary",
	}
}

func TestSyncCalendarUnconfigured(t *testing.T) {
	env := newTestEnv(t, nil)
	item := env.seedContent(t, testUserID, models.StatusApproved)

	resp := env.request(t, http.MethodPost, "/api/v1/sync-calendar", map[string]any{
		"contentId": item.ID,
	})
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Empty(t, env.calendar.created)
}

func TestSyncCalendarNoTokenLeavesItemUntouched(t *testing.T) {
	env := newTestEnv(t, calendarConfig())
	item := env.seedContent(t, testUserID, models.StatusApproved)

	resp := env.request(t, http.MethodPost, "/api/v1/sync-calendar", map[string]any{
		"contentId": item.ID,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.Empty(t, env.calendar.created)
	require.Equal(t, models.StatusApproved, env.contents.items[item.ID].Status)
	require.Empty(t, env.contents.items[item.ID].CalendarEventID)
}

func TestSyncCalendarWithStoredRefreshToken(t *testing.T) {
	env := newTestEnv(t, calendarConfig())
	item := env.seedContent(t, testUserID, models.StatusApproved)
	require.NoError(t, env.settings.StoreRefreshToken(context.Background(), testUserID, "stored-refresh"))

	resp := env.request(t, http.MethodPost, "/api/v1/sync-calendar", map[string]any{
		"contentId": item.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Success         bool   `json:"success"`
		CalendarEventID string `json:"calendarEventId"`
		CalendarURL     string `json:"calendarUrl"`
	}
	decodeJSON(t, resp, &result)
	require.True(t, result.Success)
	require.Equal(t, "event-1", result.CalendarEventID)
	require.NotEmpty(t, result.CalendarURL)

	require.Equal(t, "stored-refresh", env.calendar.usedRefresh)
	require.Len(t, env.calendar.created, 1)
	require.Equal(t, "Spring market outlook", env.calendar.created[0].Title)
	require.Equal(t, "LinkedIn", env.calendar.created[0].Platform)

	stored := env.contents.items[item.ID]
	require.Equal(t, models.StatusScheduled, stored.Status)
	require.Equal(t, "event-1", stored.CalendarEventID)
}

func TestSyncCalendarWithAccessToken(t *testing.T) {
	env := newTestEnv(t, calendarConfig())
	item := env.seedContent(t, testUserID, models.StatusApproved)

	resp := env.request(t, http.MethodPost, "/api/v1/sync-calendar", map[string]any{
		"contentId":   item.ID,
		"accessToken": "ephemeral-token",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ephemeral-token", env.calendar.usedAccess)
	require.Empty(t, env.calendar.usedRefresh)
}

func TestSyncCalendarUnknownContent(t *testing.T) {
	env := newTestEnv(t, calendarConfig())

	resp := env.request(t, http.MethodPost, "/api/v1/sync-calendar", map[string]any{
		"contentId": "00000000-0000-4000-8000-000000000099",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGoogleAuthRedirects(t *testing.T) {
	env := newTestEnv(t, calendarConfig())

	resp := env.request(t, http.MethodGet, "/api/v1/auth/google", nil)
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "state="+testUserID)
}

func TestGoogleCallbackStoresToken(t *testing.T) {
	env := newTestEnv(t, calendarConfig())

	resp := env.request(t, http.MethodGet, "/api/v1/auth/google/callback?code=auth-code&state="+testUserID, nil)
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "http://localhost:3000/settings?google=connected", resp.Header.Get("Location"))

	settings, err := env.settings.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.Equal(t, "refresh-token-1", settings.GoogleRefreshToken)
}

func TestGoogleCallbackMissingCode(t *testing.T) {
	env := newTestEnv(t, calendarConfig())

	resp := env.request(t, http.MethodGet, "/api/v1/auth/google/callback?state="+testUserID, nil)
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	require.Equal(t, "http://localhost:3000/settings?google=error", resp.Header.Get("Location"))
}
