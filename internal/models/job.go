package models

import "time"

// JobStatus is the terminal-state-only lifecycle of a generation job.
type JobStatus string

const (
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// GenerationJob records one weekly-generation invocation. One row per run,
// append-only, no retry linkage.
type GenerationJob struct {
	ID             string     `json:"id"`
	UserID         string     `json:"-"`
	Status         JobStatus  `json:"status"`
	WeekStartDate  string     `json:"weekStartDate"` // YYYY-MM-DD, Monday
	ItemsGenerated int        `json:"itemsGenerated"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}
