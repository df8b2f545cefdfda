package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lizsears/contentcal/internal/ai"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/models"
	"github.com/lizsears/contentcal/internal/research"
	"github.com/lizsears/contentcal/internal/similarity"
	"github.com/lizsears/contentcal/internal/tasks"
)

type fakeContents struct {
	database.ContentRepository
	created []*models.ContentItem
	err     error
}

func (f *fakeContents) Create(ctx context.Context, item *models.ContentItem) error {
	if f.err != nil {
		return f.err
	}
	item.ID = fmt.Sprintf("item-%d", len(f.created)+1)
	f.created = append(f.created, item)
	return nil
}

type fakeJobs struct {
	finishedStatus models.JobStatus
	finishedCount  int
	finishedError  string
}

func (f *fakeJobs) Create(ctx context.Context, job *models.GenerationJob) error {
	job.ID = "job-1"
	job.Status = models.JobRunning
	return nil
}

func (f *fakeJobs) Finish(ctx context.Context, id string, status models.JobStatus, itemsGenerated int, errorMessage string) error {
	f.finishedStatus = status
	f.finishedCount = itemsGenerated
	f.finishedError = errorMessage
	return nil
}

type fakeSettings struct {
	database.SettingsRepository
	phrases []string
}

func (f *fakeSettings) ForbiddenPhrases(ctx context.Context, userID string) ([]string, error) {
	return f.phrases, nil
}

type fakeGenerator struct {
	failPlatforms map[models.Platform]bool
	failAll       bool
	requests      []ai.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req ai.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.failAll || f.failPlatforms[req.Platform] {
		return "", errors.New("provider unavailable")
	}
	return "generated text for " + string(req.Platform), nil
}

type fakeGate struct {
	similar bool
}

func (f *fakeGate) Check(ctx context.Context, topic, content, userID string) (bool, []similarity.Match) {
	if f.similar {
		return true, []similarity.Match{{ID: "prior", Topic: topic, Similarity: 0.9}}
	}
	return false, nil
}

type fakeContextSrc struct {
	blob string
	opts research.ContextOptions
}

func (f *fakeContextSrc) Build(ctx context.Context, opts research.ContextOptions) (string, error) {
	f.opts = opts
	return f.blob, nil
}

type fakeScraper struct {
	calls int
}

func (f *fakeScraper) ScrapeAndStore(ctx context.Context, urlID string) (*research.ScrapeResult, error) {
	return &research.ScrapeResult{ID: urlID}, nil
}

func (f *fakeScraper) ScrapeAllActive(ctx context.Context) (*research.BatchResult, error) {
	f.calls++
	return &research.BatchResult{}, nil
}

type fakeEnqueuer struct {
	ids []string
}

func (f *fakeEnqueuer) Enqueue(contentID, text string) error {
	f.ids = append(f.ids, contentID)
	return nil
}

func newTestRunner(contents *fakeContents, jobs *fakeJobs, gen *fakeGenerator, gate similarity.Checker, scraper research.ScrapeRunner, contextSrc research.ContextProvider, enqueuer tasks.Enqueuer) *Runner {
	return NewRunner(contents, jobs, &fakeSettings{}, gen, gate, scraper, contextSrc, enqueuer)
}

func TestRunGeneratesFullWeek(t *testing.T) {
	contents := &fakeContents{}
	jobs := &fakeJobs{}
	gen := &fakeGenerator{}
	enqueuer := &fakeEnqueuer{}
	runner := newTestRunner(contents, jobs, gen, nil, nil, nil, enqueuer)

	result, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05"})
	require.NoError(t, err)

	require.Equal(t, "job-1", result.JobID)
	require.Equal(t, string(models.JobCompleted), result.Status)
	require.Equal(t, 12, result.ItemsGenerated)
	require.Equal(t, 0, result.ItemsFailed)
	require.Len(t, result.ContentItems, 12)

	require.Equal(t, models.JobCompleted, jobs.finishedStatus)
	require.Equal(t, 12, jobs.finishedCount)
	require.Empty(t, jobs.finishedError)

	// One embedding per stored item.
	require.Len(t, enqueuer.ids, 12)

	for _, item := range contents.created {
		require.Equal(t, "user-1", item.UserID)
		require.Equal(t, "Liz Sears", item.Owner)
		require.Equal(t, models.StatusDraft, item.Status)
		require.True(t, strings.HasPrefix(item.PublishDate, "2026-01-"))
	}
	require.Equal(t, "2026-01-05", contents.created[0].PublishDate)
	require.Equal(t, "2026-01-11", contents.created[len(contents.created)-1].PublishDate)
}

func TestRunAllSlotsFail(t *testing.T) {
	jobs := &fakeJobs{}
	runner := newTestRunner(&fakeContents{}, jobs, &fakeGenerator{failAll: true}, nil, nil, nil, nil)

	result, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05"})
	require.NoError(t, err)

	require.Equal(t, string(models.JobFailed), result.Status)
	require.Equal(t, 0, result.ItemsGenerated)
	require.Equal(t, 12, result.ItemsFailed)
	require.Equal(t, models.JobFailed, jobs.finishedStatus)
	require.Equal(t, "12 items failed to generate", jobs.finishedError)
}

func TestRunPartialFailureStillCompletes(t *testing.T) {
	jobs := &fakeJobs{}
	gen := &fakeGenerator{failPlatforms: map[models.Platform]bool{models.PlatformIGFB: true}}
	runner := newTestRunner(&fakeContents{}, jobs, gen, nil, nil, nil, nil)

	result, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05"})
	require.NoError(t, err)

	require.Equal(t, string(models.JobCompleted), result.Status)
	require.Equal(t, 5, result.ItemsGenerated)
	require.Equal(t, 7, result.ItemsFailed)
	require.Equal(t, "7 items failed to generate", jobs.finishedError)
}

func TestRunEmptyScheduleFails(t *testing.T) {
	jobs := &fakeJobs{}
	runner := newTestRunner(&fakeContents{}, jobs, &fakeGenerator{}, nil, nil, nil, nil)

	// X has no slot in the weekly template, so the schedule is empty.
	result, err := runner.Run(context.Background(), "user-1", Params{
		StartDate: "2026-01-05",
		Platforms: []models.Platform{models.PlatformX},
	})
	require.NoError(t, err)

	require.Equal(t, string(models.JobFailed), result.Status)
	require.Equal(t, 0, result.ItemsGenerated)
	require.Equal(t, 0, result.ItemsFailed)
	require.Equal(t, models.JobFailed, jobs.finishedStatus)
	require.Empty(t, jobs.finishedError)
}

func TestRunAutoApprove(t *testing.T) {
	contents := &fakeContents{}
	runner := newTestRunner(contents, &fakeJobs{}, &fakeGenerator{}, nil, nil, nil, nil)

	_, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05", AutoApprove: true})
	require.NoError(t, err)

	for _, item := range contents.created {
		require.Equal(t, models.StatusApproved, item.Status)
	}
}

func TestRunPlatformFilter(t *testing.T) {
	contents := &fakeContents{}
	runner := newTestRunner(contents, &fakeJobs{}, &fakeGenerator{}, nil, nil, nil, nil)

	result, err := runner.Run(context.Background(), "user-1", Params{
		StartDate: "2026-01-05",
		Platforms: []models.Platform{models.PlatformLinkedIn},
	})
	require.NoError(t, err)

	require.Equal(t, 3, result.ItemsGenerated)
	for _, item := range contents.created {
		require.Equal(t, models.PlatformLinkedIn, item.Platform)
	}
}

func TestRunSimilarTopicGetsSuffix(t *testing.T) {
	contents := &fakeContents{}
	runner := newTestRunner(contents, &fakeJobs{}, &fakeGenerator{}, &fakeGate{similar: true}, nil, nil, nil)

	_, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05"})
	require.NoError(t, err)

	for _, item := range contents.created {
		require.True(t, strings.HasSuffix(item.Topic, " (fresh perspective)"), "topic %q", item.Topic)
	}
}

func TestRunResearchFirstScrapesOnce(t *testing.T) {
	scraper := &fakeScraper{}
	contextSrc := &fakeContextSrc{blob: "## Recent Research Context\n\nstuff"}
	gen := &fakeGenerator{}
	runner := newTestRunner(&fakeContents{}, &fakeJobs{}, gen, nil, scraper, contextSrc, nil)

	_, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05", ResearchFirst: true})
	require.NoError(t, err)

	require.Equal(t, 1, scraper.calls)
	require.Equal(t, 14, contextSrc.opts.DaysBack)
	require.Equal(t, 10, contextSrc.opts.MaxItems)
	for _, req := range gen.requests {
		require.Equal(t, contextSrc.blob, req.ResearchContext)
	}
}

func TestRunSkipsScrapeWhenDisabled(t *testing.T) {
	scraper := &fakeScraper{}
	runner := newTestRunner(&fakeContents{}, &fakeJobs{}, &fakeGenerator{}, nil, scraper, nil, nil)

	_, err := runner.Run(context.Background(), "user-1", Params{StartDate: "2026-01-05", ResearchFirst: false})
	require.NoError(t, err)
	require.Equal(t, 0, scraper.calls)
}
