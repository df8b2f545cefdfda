package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lizsears/contentcal/internal/models"
)

// SettingsRepo is the Postgres-backed SettingsRepository.
type SettingsRepo struct {
	db *sql.DB
}

var _ SettingsRepository = (*SettingsRepo)(nil)

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns stored settings, or the defaults when the user has none yet.
func (r *SettingsRepo) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, weekly_generation_day, weekly_generation_time,
			auto_approve_enabled, notification_email, COALESCE(google_refresh_token, '')
		FROM user_settings
		WHERE user_id = $1
	`, userID)

	var s models.UserSettings
	err := row.Scan(&s.UserID, &s.WeeklyGenerationDay, &s.WeeklyGenerationTime,
		&s.AutoApproveEnabled, &s.NotificationEmail, &s.GoogleRefreshToken)
	if err != nil {
		if err == sql.ErrNoRows {
			defaults := models.DefaultSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *models.UserSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, weekly_generation_day, weekly_generation_time,
			auto_approve_enabled, notification_email)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			weekly_generation_day = EXCLUDED.weekly_generation_day,
			weekly_generation_time = EXCLUDED.weekly_generation_time,
			auto_approve_enabled = EXCLUDED.auto_approve_enabled,
			notification_email = EXCLUDED.notification_email
	`, s.UserID, s.WeeklyGenerationDay, s.WeeklyGenerationTime,
		s.AutoApproveEnabled, s.NotificationEmail)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) StoreRefreshToken(ctx context.Context, userID, refreshToken string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, google_refresh_token)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET google_refresh_token = EXCLUDED.google_refresh_token
	`, userID, refreshToken)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *SettingsRepo) ForbiddenPhrases(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT phrase FROM phrase_patterns
		WHERE user_id = $1 AND is_forbidden = TRUE
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list forbidden phrases: %w", err)
	}
	defer rows.Close()

	phrases := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

// ReplaceForbiddenPhrases deletes the user's forbidden phrases and inserts the
// new set in a single transaction.
func (r *SettingsRepo) ReplaceForbiddenPhrases(ctx context.Context, userID string, phrases []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM phrase_patterns WHERE user_id = $1 AND is_forbidden = TRUE
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete forbidden phrases: %w", err)
	}

	for _, phrase := range phrases {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO phrase_patterns (user_id, phrase, is_forbidden)
			VALUES ($1, $2, TRUE)
		`, userID, phrase)
		if err != nil {
			return fmt.Errorf("failed to insert forbidden phrase: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SettingsRepo) UsersDueAt(ctx context.Context, day int, hhmm string) ([]models.UserSettings, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, weekly_generation_day, weekly_generation_time,
			auto_approve_enabled, notification_email, COALESCE(google_refresh_token, '')
		FROM user_settings
		WHERE weekly_generation_day = $1 AND weekly_generation_time = $2
	`, day, hhmm)
	if err != nil {
		return nil, fmt.Errorf("failed to list due users: %w", err)
	}
	defer rows.Close()

	var users []models.UserSettings
	for rows.Next() {
		var s models.UserSettings
		err := rows.Scan(&s.UserID, &s.WeeklyGenerationDay, &s.WeeklyGenerationTime,
			&s.AutoApproveEnabled, &s.NotificationEmail, &s.GoogleRefreshToken)
		if err != nil {
			return nil, err
		}
		users = append(users, s)
	}
	return users, rows.Err()
}

func (r *SettingsRepo) UserIDForKey(ctx context.Context, key string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id FROM api_keys WHERE key = $1
	`, key).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up api key: %w", err)
	}
	return userID, nil
}
