package generation

import (
	"context"
	"fmt"

	"github.com/lizsears/contentcal/internal/ai"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/models"
	"github.com/lizsears/contentcal/internal/research"
	"github.com/lizsears/contentcal/internal/similarity"
	"github.com/lizsears/contentcal/internal/tasks"
)

// defaultOwner is the display owner stamped on generated items.
const defaultOwner = "Liz Sears"

// Params controls one weekly generation run.
type Params struct {
	StartDate     string // YYYY-MM-DD, Monday
	Platforms     []models.Platform
	ResearchFirst bool
	AutoApprove   bool
}

// ItemSummary is the per-item view returned to the caller.
type ItemSummary struct {
	ID          string `json:"id"`
	Platform    string `json:"platform"`
	Topic       string `json:"topic"`
	PublishDate string `json:"publishDate"`
	Status      string `json:"status"`
}

// Result aggregates one run.
type Result struct {
	JobID          string        `json:"jobId"`
	Status         string        `json:"status"`
	ItemsGenerated int           `json:"itemsGenerated"`
	ItemsFailed    int           `json:"itemsFailed"`
	ContentItems   []ItemSummary `json:"contentItems"`
}

// Runner executes the weekly content-generation job: a sequential walk over
// the schedule template, one provider call per slot, partial failure allowed.
type Runner struct {
	contents   database.ContentRepository
	jobs       database.JobRepository
	settings   database.SettingsRepository
	generator  ai.Generator
	gate       similarity.Checker
	scraper    research.ScrapeRunner
	contextSrc research.ContextProvider
	embeddings tasks.Enqueuer
}

func NewRunner(
	contents database.ContentRepository,
	jobs database.JobRepository,
	settings database.SettingsRepository,
	generator ai.Generator,
	gate similarity.Checker,
	scraper research.ScrapeRunner,
	contextSrc research.ContextProvider,
	embeddings tasks.Enqueuer,
) *Runner {
	return &Runner{
		contents:   contents,
		jobs:       jobs,
		settings:   settings,
		generator:  generator,
		gate:       gate,
		scraper:    scraper,
		contextSrc: contextSrc,
		embeddings: embeddings,
	}
}

// Run executes one generation job for the user. Re-running the same week
// creates new rows; there is no dedup against prior runs.
func (r *Runner) Run(ctx context.Context, userID string, params Params) (*Result, error) {
	job := &models.GenerationJob{UserID: userID, WeekStartDate: params.StartDate}
	if err := r.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create generation job: %w", err)
	}

	forbidden, err := r.settings.ForbiddenPhrases(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("failed to load forbidden phrases")
		forbidden = nil
	}

	// Research scraping is non-critical.
	if params.ResearchFirst && r.scraper != nil {
		if _, err := r.scraper.ScrapeAllActive(ctx); err != nil {
			logger.Warn().Err(err).Msg("pre-generation research scrape failed")
		}
	}

	researchContext := ""
	if r.contextSrc != nil {
		researchContext, err = r.contextSrc.Build(ctx, research.ContextOptions{DaysBack: 14, MaxItems: 10})
		if err != nil {
			logger.Warn().Err(err).Msg("failed to build research context")
			researchContext = ""
		}
	}

	schedule := FilterSchedule(params.Platforms)

	result := &Result{JobID: job.ID, ContentItems: []ItemSummary{}}
	for _, slot := range schedule {
		item, err := r.generateSlot(ctx, userID, params, slot, researchContext, forbidden)
		if err != nil {
			result.ItemsFailed++
			logger.Warn().Err(err).
				Str("platform", string(slot.Platform)).
				Int("day_offset", slot.DayOffset).
				Msg("slot generation failed")
			continue
		}

		result.ContentItems = append(result.ContentItems, ItemSummary{
			ID:          item.ID,
			Platform:    string(item.Platform),
			Topic:       item.Topic,
			PublishDate: item.PublishDate,
			Status:      string(item.Status),
		})
		result.ItemsGenerated++

		// Best-effort embedding storage through the background queue.
		if r.embeddings != nil {
			if err := r.embeddings.Enqueue(item.ID, similarity.EmbeddingText(item)); err != nil {
				logger.Warn().Err(err).Str("content_id", item.ID).Msg("failed to enqueue embedding")
			}
		}
	}

	status := models.JobCompleted
	if result.ItemsFailed == len(schedule) {
		status = models.JobFailed
	}
	errorMessage := ""
	if result.ItemsFailed > 0 {
		errorMessage = fmt.Sprintf("%d items failed to generate", result.ItemsFailed)
	}

	if err := r.jobs.Finish(ctx, job.ID, status, result.ItemsGenerated, errorMessage); err != nil {
		logger.Error().Err(err).Str("job_id", job.ID).Msg("failed to finish generation job")
	}

	result.Status = string(status)
	return result, nil
}

func (r *Runner) generateSlot(ctx context.Context, userID string, params Params, slot Slot, researchContext string, forbidden []string) (*models.ContentItem, error) {
	publishDate, err := addDays(params.StartDate, slot.DayOffset)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	topic := pickTopic(slot.ContentType)

	// The gate nudges, never rejects: a similar topic gets a suffix.
	if r.gate != nil {
		if isSimilar, _ := r.gate.Check(ctx, topic, "", userID); isSimilar {
			topic = topic + " (fresh perspective)"
		}
	}

	text, err := r.generator.Generate(ctx, ai.Request{
		Platform:         slot.Platform,
		Topic:            topic,
		ContentType:      slot.ContentType,
		ResearchContext:  researchContext,
		ForbiddenPhrases: forbidden,
	})
	if err != nil {
		return nil, err
	}

	status := models.StatusDraft
	if params.AutoApprove {
		status = models.StatusApproved
	}

	item := &models.ContentItem{
		UserID:        userID,
		Platform:      slot.Platform,
		ContentType:   slot.ContentType,
		Topic:         topic,
		GeneratedText: text,
		PublishDate:   publishDate,
		PublishTime:   slot.PublishTime,
		Status:        status,
		Owner:         defaultOwner,
	}
	if err := r.contents.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
