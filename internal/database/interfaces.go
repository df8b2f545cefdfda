package database

import (
	"context"
	"time"

	"github.com/lizsears/contentcal/internal/models"
)

// ContentRepository handles content item persistence.
type ContentRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	List(ctx context.Context, userID string, filter models.ContentFilter) ([]models.ContentItem, error)
	GetByID(ctx context.Context, userID, id string) (*models.ContentItem, error)
	Update(ctx context.Context, userID string, id string, updates models.ContentUpdate) (*models.ContentItem, error)
	Delete(ctx context.Context, userID, id string) error
	// Approve transitions an item from draft to approved. It returns nil,nil
	// when no draft row matched, which callers map to not-found.
	Approve(ctx context.Context, userID, id string) (*models.ContentItem, error)
	MarkScheduled(ctx context.Context, userID, id, calendarEventID string) error
	UpdateEmbedding(ctx context.Context, id string, embedding []float64) error
	ListEmbeddings(ctx context.Context, userID string, limit int) ([]models.ContentEmbedding, error)
}

// ResearchRepository handles research URLs and scraped content.
type ResearchRepository interface {
	CreateURL(ctx context.Context, u *models.ResearchURL) error
	ListURLs(ctx context.Context, userID string) ([]models.ResearchURL, error)
	GetURL(ctx context.Context, id string) (*models.ResearchURL, error)
	UpdateURL(ctx context.Context, userID, id string, updates models.ResearchURLUpdate) (*models.ResearchURL, error)
	DeleteURL(ctx context.Context, userID, id string) error
	ListActiveURLs(ctx context.Context) ([]models.ResearchURL, error)
	InsertContent(ctx context.Context, c *models.ResearchContent) error
	LatestContent(ctx context.Context, researchURLID string) (*models.ResearchContent, error)
	TouchLastScraped(ctx context.Context, researchURLID string, at time.Time) error
	RecentSnippets(ctx context.Context, since time.Time, categories []models.ResearchCategory, maxItems int) ([]models.ResearchSnippet, error)
}

// JobRepository handles generation job records.
type JobRepository interface {
	Create(ctx context.Context, job *models.GenerationJob) error
	Finish(ctx context.Context, id string, status models.JobStatus, itemsGenerated int, errorMessage string) error
}

// SettingsRepository handles user settings, forbidden phrases, and API keys.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Upsert(ctx context.Context, s *models.UserSettings) error
	StoreRefreshToken(ctx context.Context, userID, refreshToken string) error
	ForbiddenPhrases(ctx context.Context, userID string) ([]string, error)
	ReplaceForbiddenPhrases(ctx context.Context, userID string, phrases []string) error
	UsersDueAt(ctx context.Context, day int, hhmm string) ([]models.UserSettings, error)
	UserIDForKey(ctx context.Context, key string) (string, error)
}
