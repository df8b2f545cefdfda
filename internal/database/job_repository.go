package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lizsears/contentcal/internal/models"
)

// JobRepo is the Postgres-backed JobRepository.
type JobRepo struct {
	db *sql.DB
}

var _ JobRepository = (*JobRepo)(nil)

func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) Create(ctx context.Context, job *models.GenerationJob) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO generation_jobs (user_id, status, week_start_date)
		VALUES ($1, 'running', $2)
		RETURNING id, started_at
	`, job.UserID, job.WeekStartDate).Scan(&job.ID, &job.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create generation job: %w", err)
	}
	job.Status = models.JobRunning
	return nil
}

func (r *JobRepo) Finish(ctx context.Context, id string, status models.JobStatus, itemsGenerated int, errorMessage string) error {
	var errMsg sql.NullString
	if errorMessage != "" {
		errMsg = sql.NullString{String: errorMessage, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE generation_jobs
		SET status = $2, items_generated = $3, error_message = $4, completed_at = NOW()
		WHERE id = $1
	`, id, status, itemsGenerated, errMsg)
	if err != nil {
		return fmt.Errorf("failed to finish generation job: %w", err)
	}
	return nil
}
