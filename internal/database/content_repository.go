package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/lizsears/contentcal/internal/models"
)

const contentColumns = `id, user_id, platform, content_type, topic, generated_text,
	to_char(publish_date, 'YYYY-MM-DD'), publish_time, status, owner,
	COALESCE(calendar_event_id, ''), created_at, updated_at`

// ContentRepo is the Postgres-backed ContentRepository.
type ContentRepo struct {
	db *sql.DB
}

var _ ContentRepository = (*ContentRepo)(nil)

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

func (r *ContentRepo) Create(ctx context.Context, item *models.ContentItem) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO content (user_id, platform, content_type, topic, generated_text,
			publish_date, publish_time, status, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, item.UserID, item.Platform, item.ContentType, item.Topic, item.GeneratedText,
		item.PublishDate, item.PublishTime, item.Status, item.Owner).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

func (r *ContentRepo) List(ctx context.Context, userID string, filter models.ContentFilter) ([]models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Platform != "" {
		args = append(args, filter.Platform)
		query += ` AND platform = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += ` AND publish_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += ` AND publish_date <= $` + strconv.Itoa(len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += ` ORDER BY publish_date ASC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	items := []models.ContentItem{}
	for rows.Next() {
		var item models.ContentItem
		if err := scanContent(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ContentRepo) GetByID(ctx context.Context, userID, id string) (*models.ContentItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+contentColumns+` FROM content WHERE id = $1 AND user_id = $2
	`, id, userID)

	var item models.ContentItem
	if err := scanContent(row, &item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &item, nil
}

func (r *ContentRepo) Update(ctx context.Context, userID string, id string, updates models.ContentUpdate) (*models.ContentItem, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id, userID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if updates.Platform != nil {
		add("platform", *updates.Platform)
	}
	if updates.ContentType != nil {
		add("content_type", *updates.ContentType)
	}
	if updates.Topic != nil {
		add("topic", *updates.Topic)
	}
	if updates.GeneratedText != nil {
		add("generated_text", *updates.GeneratedText)
	}
	if updates.PublishDate != nil {
		add("publish_date", *updates.PublishDate)
	}
	if updates.PublishTime != nil {
		add("publish_time", *updates.PublishTime)
	}
	if updates.Status != nil {
		add("status", *updates.Status)
	}
	if updates.Owner != nil {
		add("owner", *updates.Owner)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE content SET `+strings.Join(sets, ", ")+`
		WHERE id = $1 AND user_id = $2
		RETURNING `+contentColumns, args...)

	var item models.ContentItem
	if err := scanContent(row, &item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update content: %w", err)
	}
	return &item, nil
}

func (r *ContentRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM content WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}

// Approve performs the draft-only conditional transition. The status predicate
// is part of the UPDATE so a non-draft item never matches.
func (r *ContentRepo) Approve(ctx context.Context, userID, id string) (*models.ContentItem, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE content SET status = 'approved', updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND status = 'draft'
		RETURNING `+contentColumns, id, userID)

	var item models.ContentItem
	if err := scanContent(row, &item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to approve content: %w", err)
	}
	return &item, nil
}

func (r *ContentRepo) MarkScheduled(ctx context.Context, userID, id, calendarEventID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE content SET status = 'scheduled', calendar_event_id = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, id, userID, calendarEventID)
	if err != nil {
		return fmt.Errorf("failed to mark content scheduled: %w", err)
	}
	return nil
}

func (r *ContentRepo) UpdateEmbedding(ctx context.Context, id string, embedding []float64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE content SET embedding = $2 WHERE id = $1
	`, id, pq.Array(embedding))
	if err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	return nil
}

func (r *ContentRepo) ListEmbeddings(ctx context.Context, userID string, limit int) ([]models.ContentEmbedding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, topic, embedding FROM content
		WHERE user_id = $1 AND embedding IS NOT NULL
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings: %w", err)
	}
	defer rows.Close()

	var result []models.ContentEmbedding
	for rows.Next() {
		var e models.ContentEmbedding
		var vec pq.Float64Array
		if err := rows.Scan(&e.ID, &e.Topic, &vec); err != nil {
			return nil, err
		}
		e.Embedding = []float64(vec)
		result = append(result, e)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContent(row rowScanner, item *models.ContentItem) error {
	var calendarEventID string
	err := row.Scan(&item.ID, &item.UserID, &item.Platform, &item.ContentType,
		&item.Topic, &item.GeneratedText, &item.PublishDate, &item.PublishTime,
		&item.Status, &item.Owner, &calendarEventID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return err
	}
	item.CalendarEventID = calendarEventID
	return nil
}
