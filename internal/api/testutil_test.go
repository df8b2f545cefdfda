package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/lizsears/contentcal/internal/calendar"
	"github.com/lizsears/contentcal/internal/config"
	"github.com/lizsears/contentcal/internal/generation"
	"github.com/lizsears/contentcal/internal/middleware"
	"github.com/lizsears/contentcal/internal/models"
	"github.com/lizsears/contentcal/internal/research"
)

const (
	testAPIKey = "test-key"
	testUserID = "user-1"
)

// memContentRepo is an in-memory ContentRepository honoring user scoping.
type memContentRepo struct {
	items map[string]*models.ContentItem
	seq   int
}

func newMemContentRepo() *memContentRepo {
	return &memContentRepo{items: map[string]*models.ContentItem{}}
}

func (m *memContentRepo) Create(ctx context.Context, item *models.ContentItem) error {
	m.seq++
	item.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", m.seq)
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	clone := *item
	m.items[item.ID] = &clone
	return nil
}

func (m *memContentRepo) List(ctx context.Context, userID string, filter models.ContentFilter) ([]models.ContentItem, error) {
	var out []models.ContentItem
	for _, item := range m.items {
		if item.UserID != userID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Platform != "" && item.Platform != filter.Platform {
			continue
		}
		if filter.StartDate != "" && item.PublishDate < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && item.PublishDate > filter.EndDate {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (m *memContentRepo) GetByID(ctx context.Context, userID, id string) (*models.ContentItem, error) {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (m *memContentRepo) Update(ctx context.Context, userID, id string, updates models.ContentUpdate) (*models.ContentItem, error) {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return nil, nil
	}
	if updates.Topic != nil {
		item.Topic = *updates.Topic
	}
	if updates.GeneratedText != nil {
		item.GeneratedText = *updates.GeneratedText
	}
	if updates.PublishDate != nil {
		item.PublishDate = *updates.PublishDate
	}
	if updates.PublishTime != nil {
		item.PublishTime = *updates.PublishTime
	}
	if updates.Status != nil {
		item.Status = *updates.Status
	}
	if updates.Owner != nil {
		item.Owner = *updates.Owner
	}
	clone := *item
	return &clone, nil
}

func (m *memContentRepo) Delete(ctx context.Context, userID, id string) error {
	if item, ok := m.items[id]; ok && item.UserID == userID {
		delete(m.items, id)
	}
	return nil
}

func (m *memContentRepo) Approve(ctx context.Context, userID, id string) (*models.ContentItem, error) {
	item, ok := m.items[id]
	if !ok || item.UserID != userID || item.Status != models.StatusDraft {
		return nil, nil
	}
	item.Status = models.StatusApproved
	clone := *item
	return &clone, nil
}

func (m *memContentRepo) MarkScheduled(ctx context.Context, userID, id, calendarEventID string) error {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return nil
	}
	item.Status = models.StatusScheduled
	item.CalendarEventID = calendarEventID
	return nil
}

func (m *memContentRepo) UpdateEmbedding(ctx context.Context, id string, embedding []float64) error {
	return nil
}

func (m *memContentRepo) ListEmbeddings(ctx context.Context, userID string, limit int) ([]models.ContentEmbedding, error) {
	return nil, nil
}

// memResearchRepo is an in-memory ResearchRepository.
type memResearchRepo struct {
	urls map[string]*models.ResearchURL
	seq  int
}

func newMemResearchRepo() *memResearchRepo {
	return &memResearchRepo{urls: map[string]*models.ResearchURL{}}
}

func (m *memResearchRepo) CreateURL(ctx context.Context, u *models.ResearchURL) error {
	m.seq++
	u.ID = fmt.Sprintf("10000000-0000-4000-8000-%012d", m.seq)
	u.CreatedAt = time.Now()
	clone := *u
	m.urls[u.ID] = &clone
	return nil
}

func (m *memResearchRepo) ListURLs(ctx context.Context, userID string) ([]models.ResearchURL, error) {
	var out []models.ResearchURL
	for _, u := range m.urls {
		if u.UserID == userID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memResearchRepo) GetURL(ctx context.Context, id string) (*models.ResearchURL, error) {
	u, ok := m.urls[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (m *memResearchRepo) UpdateURL(ctx context.Context, userID, id string, updates models.ResearchURLUpdate) (*models.ResearchURL, error) {
	u, ok := m.urls[id]
	if !ok || u.UserID != userID {
		return nil, nil
	}
	if updates.URL != nil {
		u.URL = *updates.URL
	}
	if updates.Title != nil {
		u.Title = *updates.Title
	}
	if updates.Category != nil {
		u.Category = *updates.Category
	}
	if updates.ScrapeFrequency != nil {
		u.ScrapeFrequency = *updates.ScrapeFrequency
	}
	if updates.IsActive != nil {
		u.IsActive = *updates.IsActive
	}
	clone := *u
	return &clone, nil
}

func (m *memResearchRepo) DeleteURL(ctx context.Context, userID, id string) error {
	if u, ok := m.urls[id]; ok && u.UserID == userID {
		delete(m.urls, id)
	}
	return nil
}

func (m *memResearchRepo) ListActiveURLs(ctx context.Context) ([]models.ResearchURL, error) {
	var out []models.ResearchURL
	for _, u := range m.urls {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memResearchRepo) InsertContent(ctx context.Context, c *models.ResearchContent) error {
	return nil
}

func (m *memResearchRepo) LatestContent(ctx context.Context, researchURLID string) (*models.ResearchContent, error) {
	return nil, nil
}

func (m *memResearchRepo) TouchLastScraped(ctx context.Context, researchURLID string, at time.Time) error {
	return nil
}

func (m *memResearchRepo) RecentSnippets(ctx context.Context, since time.Time, categories []models.ResearchCategory, maxItems int) ([]models.ResearchSnippet, error) {
	return nil, nil
}

// memSettingsRepo is an in-memory SettingsRepository.
type memSettingsRepo struct {
	settings map[string]*models.UserSettings
	phrases  map[string][]string
	keys     map[string]string
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{
		settings: map[string]*models.UserSettings{},
		phrases:  map[string][]string{},
		keys:     map[string]string{testAPIKey: testUserID},
	}
}

func (m *memSettingsRepo) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	if s, ok := m.settings[userID]; ok {
		clone := *s
		return &clone, nil
	}
	defaults := models.DefaultSettings(userID)
	return &defaults, nil
}

func (m *memSettingsRepo) Upsert(ctx context.Context, s *models.UserSettings) error {
	clone := *s
	m.settings[s.UserID] = &clone
	return nil
}

func (m *memSettingsRepo) StoreRefreshToken(ctx context.Context, userID, refreshToken string) error {
	s, _ := m.Get(ctx, userID)
	s.GoogleRefreshToken = refreshToken
	m.settings[userID] = s
	return nil
}

func (m *memSettingsRepo) ForbiddenPhrases(ctx context.Context, userID string) ([]string, error) {
	return m.phrases[userID], nil
}

func (m *memSettingsRepo) ReplaceForbiddenPhrases(ctx context.Context, userID string, phrases []string) error {
	m.phrases[userID] = phrases
	return nil
}

func (m *memSettingsRepo) UsersDueAt(ctx context.Context, day int, hhmm string) ([]models.UserSettings, error) {
	return nil, nil
}

func (m *memSettingsRepo) UserIDForKey(ctx context.Context, key string) (string, error) {
	return m.keys[key], nil
}

// fakeRunner records the last generation request.
type fakeRunner struct {
	lastUserID string
	lastParams generation.Params
	result     *generation.Result
	err        error
}

func (f *fakeRunner) Run(ctx context.Context, userID string, params generation.Params) (*generation.Result, error) {
	f.lastUserID = userID
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &generation.Result{JobID: "job-1", Status: "completed", ContentItems: []generation.ItemSummary{}}, nil
}

// fakeScrapeRunner counts scrape calls.
type fakeScrapeRunner struct {
	allCalls int
	perURL   map[string]bool
	err      error
}

func (f *fakeScrapeRunner) ScrapeAndStore(ctx context.Context, urlID string) (*research.ScrapeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.perURL == nil {
		f.perURL = map[string]bool{}
	}
	f.perURL[urlID] = true
	return &research.ScrapeResult{ID: urlID, IsNew: true}, nil
}

func (f *fakeScrapeRunner) ScrapeAllActive(ctx context.Context) (*research.BatchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.allCalls++
	return &research.BatchResult{Scraped: 2}, nil
}

// fakeCalendar records created events.
type fakeCalendar struct {
	created      []calendar.EventParams
	usedRefresh  string
	usedAccess   string
	exchangeCode string
	createErr    error
}

func (f *fakeCalendar) AuthURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f *fakeCalendar) Exchange(ctx context.Context, code string) (string, error) {
	f.exchangeCode = code
	return "refresh-token-1", nil
}

func (f *fakeCalendar) CreateEventWithAccessToken(ctx context.Context, accessToken string, params calendar.EventParams) (*calendar.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.usedAccess = accessToken
	f.created = append(f.created, params)
	return &calendar.Event{EventID: "event-1", HTMLLink: "https://calendar.google.com/event-1"}, nil
}

func (f *fakeCalendar) CreateEventWithRefreshToken(ctx context.Context, refreshToken string, params calendar.EventParams) (*calendar.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.usedRefresh = refreshToken
	f.created = append(f.created, params)
	return &calendar.Event{EventID: "event-1", HTMLLink: "https://calendar.google.com/event-1"}, nil
}

func (f *fakeCalendar) UpdateEvent(ctx context.Context, refreshToken, eventID, title, description string) error {
	return nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, refreshToken, eventID string) error {
	return nil
}

// testEnv bundles an app with its fakes.
type testEnv struct {
	app      *fiber.App
	contents *memContentRepo
	research *memResearchRepo
	settings *memSettingsRepo
	runner   *fakeRunner
	scraper  *fakeScrapeRunner
	calendar *fakeCalendar
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{SiteURL: "http://localhost:3000"}
	}

	env := &testEnv{
		contents: newMemContentRepo(),
		research: newMemResearchRepo(),
		settings: newMemSettingsRepo(),
		runner:   &fakeRunner{},
		scraper:  &fakeScrapeRunner{},
		calendar: &fakeCalendar{},
	}

	h := NewHandlers(cfg, env.contents, env.research, env.settings, env.runner, env.scraper, env.calendar)

	env.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	SetupRoutes(env.app, h, func(c *fiber.Ctx, key string) (string, error) {
		return env.settings.UserIDForKey(c.Context(), key)
	})
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) seedContent(t *testing.T, userID string, status models.ContentStatus) *models.ContentItem {
	t.Helper()
	item := &models.ContentItem{
		UserID:        userID,
		Platform:      models.PlatformLinkedIn,
		ContentType:   models.TypeMarket,
		Topic:         "Spring market outlook",
		GeneratedText: "The market is warming up.",
		PublishDate:   "2026-01-05",
		PublishTime:   "10:00 AM",
		Status:        status,
		Owner:         "Liz Sears",
	}
	require.NoError(t, e.contents.Create(context.Background(), item))
	return item
}
