package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lizsears/contentcal/internal/cache"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/models"
)

// ContextOptions narrows what goes into the research context blob.
type ContextOptions struct {
	Categories []models.ResearchCategory
	DaysBack   int
	MaxItems   int
}

// ContextProvider is what the generation job depends on.
type ContextProvider interface {
	Build(ctx context.Context, opts ContextOptions) (string, error)
}

// ContextBuilder assembles recent scrape summaries into a markdown blob that
// generation prompts embed. The assembled blob is cached briefly.
type ContextBuilder struct {
	repo     database.ResearchRepository
	cache    cache.CacheInterface
	cacheTTL time.Duration
}

var _ ContextProvider = (*ContextBuilder)(nil)

func NewContextBuilder(repo database.ResearchRepository, c cache.CacheInterface, ttl time.Duration) *ContextBuilder {
	return &ContextBuilder{repo: repo, cache: c, cacheTTL: ttl}
}

// Build returns the formatted research context, or an empty string when no
// recent research exists.
func (b *ContextBuilder) Build(ctx context.Context, opts ContextOptions) (string, error) {
	if opts.DaysBack <= 0 {
		opts.DaysBack = 7
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = 10
	}

	cacheKey := contextCacheKey(opts)
	if b.cache != nil {
		if cached, ok, err := b.cache.Get(ctx, cacheKey); err == nil && ok {
			return cached, nil
		}
	}

	since := time.Now().AddDate(0, 0, -opts.DaysBack)
	snippets, err := b.repo.RecentSnippets(ctx, since, opts.Categories, opts.MaxItems)
	if err != nil {
		return "", err
	}
	if len(snippets) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("## Recent Research Context\n\n")
	sb.WriteString("The following insights were gathered from recent research. Use them to inform your content:\n\n")
	for _, s := range snippets {
		summary := s.Summary
		if summary == "" {
			summary = "No summary available."
		}
		fmt.Fprintf(&sb, "### %s: %s\n", s.Category, s.Title)
		fmt.Fprintf(&sb, "Source: %s\n", s.URL)
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}

	blob := sb.String()
	if b.cache != nil {
		if err := b.cache.Set(ctx, cacheKey, blob, b.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache research context")
		}
	}

	return blob, nil
}

func contextCacheKey(opts ContextOptions) string {
	cats := make([]string, len(opts.Categories))
	for i, c := range opts.Categories {
		cats[i] = string(c)
	}
	return fmt.Sprintf("research-context:%d:%d:%s", opts.DaysBack, opts.MaxItems, strings.Join(cats, ","))
}
