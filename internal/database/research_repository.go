package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/lizsears/contentcal/internal/models"
)

const researchURLColumns = `id, user_id, url, title, category, scrape_frequency,
	is_active, last_scraped, created_at`

// ResearchRepo is the Postgres-backed ResearchRepository.
type ResearchRepo struct {
	db *sql.DB
}

var _ ResearchRepository = (*ResearchRepo)(nil)

func NewResearchRepo(db *sql.DB) *ResearchRepo {
	return &ResearchRepo{db: db}
}

func (r *ResearchRepo) CreateURL(ctx context.Context, u *models.ResearchURL) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO research_urls (user_id, url, title, category, scrape_frequency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at
	`, u.UserID, u.URL, u.Title, u.Category, u.ScrapeFrequency).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert research url: %w", err)
	}
	return nil
}

func (r *ResearchRepo) ListURLs(ctx context.Context, userID string) ([]models.ResearchURL, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+researchURLColumns+` FROM research_urls
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list research urls: %w", err)
	}
	defer rows.Close()
	return collectURLs(rows)
}

func (r *ResearchRepo) GetURL(ctx context.Context, id string) (*models.ResearchURL, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+researchURLColumns+` FROM research_urls WHERE id = $1
	`, id)

	var u models.ResearchURL
	if err := scanURL(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get research url: %w", err)
	}
	return &u, nil
}

func (r *ResearchRepo) UpdateURL(ctx context.Context, userID, id string, updates models.ResearchURLUpdate) (*models.ResearchURL, error) {
	sets := []string{}
	args := []interface{}{id, userID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if updates.URL != nil {
		add("url", *updates.URL)
	}
	if updates.Title != nil {
		add("title", *updates.Title)
	}
	if updates.Category != nil {
		add("category", *updates.Category)
	}
	if updates.ScrapeFrequency != nil {
		add("scrape_frequency", *updates.ScrapeFrequency)
	}
	if updates.IsActive != nil {
		add("is_active", *updates.IsActive)
	}

	if len(sets) == 0 {
		u, err := r.GetURL(ctx, id)
		if err != nil || u == nil || u.UserID != userID {
			return nil, err
		}
		return u, nil
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE research_urls SET `+strings.Join(sets, ", ")+`
		WHERE id = $1 AND user_id = $2
		RETURNING `+researchURLColumns, args...)

	var u models.ResearchURL
	if err := scanURL(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update research url: %w", err)
	}
	return &u, nil
}

func (r *ResearchRepo) DeleteURL(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM research_urls WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete research url: %w", err)
	}
	return nil
}

func (r *ResearchRepo) ListActiveURLs(ctx context.Context) ([]models.ResearchURL, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+researchURLColumns+` FROM research_urls WHERE is_active = TRUE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active research urls: %w", err)
	}
	defer rows.Close()
	return collectURLs(rows)
}

func (r *ResearchRepo) InsertContent(ctx context.Context, c *models.ResearchContent) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO research_content (research_url_id, raw_content, summary)
		VALUES ($1, $2, $3)
		RETURNING id, scraped_at
	`, c.ResearchURLID, c.RawContent, c.Summary).Scan(&c.ID, &c.ScrapedAt)
	if err != nil {
		return fmt.Errorf("failed to insert research content: %w", err)
	}
	return nil
}

func (r *ResearchRepo) LatestContent(ctx context.Context, researchURLID string) (*models.ResearchContent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, research_url_id, raw_content, summary, scraped_at
		FROM research_content
		WHERE research_url_id = $1
		ORDER BY scraped_at DESC
		LIMIT 1
	`, researchURLID)

	var c models.ResearchContent
	err := row.Scan(&c.ID, &c.ResearchURLID, &c.RawContent, &c.Summary, &c.ScrapedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest research content: %w", err)
	}
	return &c, nil
}

func (r *ResearchRepo) TouchLastScraped(ctx context.Context, researchURLID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE research_urls SET last_scraped = $2 WHERE id = $1
	`, researchURLID, at)
	if err != nil {
		return fmt.Errorf("failed to update last_scraped: %w", err)
	}
	return nil
}

func (r *ResearchRepo) RecentSnippets(ctx context.Context, since time.Time, categories []models.ResearchCategory, maxItems int) ([]models.ResearchSnippet, error) {
	query := `
		SELECT u.category, u.title, u.url, c.summary, c.scraped_at
		FROM research_content c
		JOIN research_urls u ON u.id = c.research_url_id
		WHERE c.scraped_at >= $1`
	args := []interface{}{since}

	if len(categories) > 0 {
		cats := make([]string, len(categories))
		for i, c := range categories {
			cats[i] = string(c)
		}
		args = append(args, pq.Array(cats))
		query += ` AND u.category = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, maxItems)
	query += ` ORDER BY c.scraped_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query research snippets: %w", err)
	}
	defer rows.Close()

	var snippets []models.ResearchSnippet
	for rows.Next() {
		var s models.ResearchSnippet
		if err := rows.Scan(&s.Category, &s.Title, &s.URL, &s.Summary, &s.ScrapedAt); err != nil {
			return nil, err
		}
		snippets = append(snippets, s)
	}
	return snippets, rows.Err()
}

func collectURLs(rows *sql.Rows) ([]models.ResearchURL, error) {
	urls := []models.ResearchURL{}
	for rows.Next() {
		var u models.ResearchURL
		if err := scanURL(rows, &u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func scanURL(row rowScanner, u *models.ResearchURL) error {
	var lastScraped sql.NullTime
	err := row.Scan(&u.ID, &u.UserID, &u.URL, &u.Title, &u.Category,
		&u.ScrapeFrequency, &u.IsActive, &lastScraped, &u.CreatedAt)
	if err != nil {
		return err
	}
	if lastScraped.Valid {
		u.LastScraped = &lastScraped.Time
	}
	return nil
}
