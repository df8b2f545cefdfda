package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/generation"
	"github.com/lizsears/contentcal/internal/logger"
)

// WeekGenerator runs one weekly generation job for a user.
type WeekGenerator interface {
	Run(ctx context.Context, userID string, params generation.Params) (*generation.Result, error)
}

// Scheduler fires weekly generation jobs for users whose configured day and
// hour have arrived. It ticks at the top of every hour and matches settings
// against the server's local time.
type Scheduler struct {
	settings database.SettingsRepository
	runner   WeekGenerator

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(settings database.SettingsRepository, runner WeekGenerator) *Scheduler {
	return &Scheduler{settings: settings, runner: runner}
}

// Start launches the ticker goroutine. Call Stop to shut it down.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()

	logger.Info().Msg("Weekly generation scheduler started")
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	logger.Info().Msg("Weekly generation scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	for {
		next := nextHour(time.Now())
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}
		s.tick(ctx, next)
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	day := int(now.Weekday())
	hhmm := now.Format("15:04")

	users, err := s.settings.UsersDueAt(ctx, day, hhmm)
	if err != nil {
		logger.WithError(err).Msg("failed to query users due for generation")
		return
	}

	for _, u := range users {
		params := generation.Params{
			StartDate:     nextMonday(now).Format("2006-01-02"),
			ResearchFirst: true,
			AutoApprove:   u.AutoApproveEnabled,
		}

		result, err := s.runner.Run(ctx, u.UserID, params)
		if err != nil {
			logger.WithError(err).Str("user_id", u.UserID).Msg("scheduled generation run failed")
			continue
		}
		logger.Info().
			Str("user_id", u.UserID).
			Str("job_id", result.JobID).
			Int("items_generated", result.ItemsGenerated).
			Int("items_failed", result.ItemsFailed).
			Msgf("Scheduled generation finished with status %s", result.Status)
	}
}

func nextHour(t time.Time) time.Time {
	return t.Truncate(time.Hour).Add(time.Hour)
}

// nextMonday returns the Monday after t, or t itself when t is a Monday.
func nextMonday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}
