package research

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lizsears/contentcal/internal/cache"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/models"
)

type stubSnippetRepo struct {
	database.ResearchRepository
	snippets []models.ResearchSnippet
	calls    int
	gotSince time.Time
	gotMax   int
}

func (s *stubSnippetRepo) RecentSnippets(ctx context.Context, since time.Time, categories []models.ResearchCategory, maxItems int) ([]models.ResearchSnippet, error) {
	s.calls++
	s.gotSince = since
	s.gotMax = maxItems
	return s.snippets, nil
}

func TestBuildFormatsSnippets(t *testing.T) {
	repo := &stubSnippetRepo{snippets: []models.ResearchSnippet{
		{Category: models.CategoryMarketResearch, Title: "Q1 Report", URL: "https://example.com/q1", Summary: "Prices rose 4%."},
		{Category: models.CategoryLocalNews, Title: "New Development", URL: "https://example.com/dev", Summary: ""},
	}}
	builder := NewContextBuilder(repo, nil, 0)

	blob, err := builder.Build(context.Background(), ContextOptions{DaysBack: 14, MaxItems: 10})
	require.NoError(t, err)

	require.True(t, len(blob) > 0)
	require.Contains(t, blob, "## Recent Research Context")
	require.Contains(t, blob, "### Market Research: Q1 Report")
	require.Contains(t, blob, "Source: https://example.com/q1")
	require.Contains(t, blob, "Prices rose 4%.")
	require.Contains(t, blob, "No summary available.")

	require.Equal(t, 10, repo.gotMax)
	require.WithinDuration(t, time.Now().AddDate(0, 0, -14), repo.gotSince, time.Minute)
}

func TestBuildEmptyWhenNoResearch(t *testing.T) {
	builder := NewContextBuilder(&stubSnippetRepo{}, nil, 0)

	blob, err := builder.Build(context.Background(), ContextOptions{})
	require.NoError(t, err)
	require.Empty(t, blob)
}

func TestBuildDefaults(t *testing.T) {
	repo := &stubSnippetRepo{}
	builder := NewContextBuilder(repo, nil, 0)

	_, err := builder.Build(context.Background(), ContextOptions{})
	require.NoError(t, err)
	require.Equal(t, 10, repo.gotMax)
	require.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.gotSince, time.Minute)
}

func TestBuildUsesCache(t *testing.T) {
	repo := &stubSnippetRepo{snippets: []models.ResearchSnippet{
		{Category: models.CategoryGeneral, Title: "T", URL: "https://example.com", Summary: "s"},
	}}
	builder := NewContextBuilder(repo, cache.NewMockCache(), time.Minute)

	first, err := builder.Build(context.Background(), ContextOptions{DaysBack: 14, MaxItems: 10})
	require.NoError(t, err)

	second, err := builder.Build(context.Background(), ContextOptions{DaysBack: 14, MaxItems: 10})
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, repo.calls)
}
