package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lizsears/contentcal/internal/ai"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/models"
)

// rawContentCap bounds what a single scrape stores in the database.
const rawContentCap = 50000

// ScrapeResult summarizes one scrape-and-store run.
type ScrapeResult struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	IsNew   bool   `json:"isNew"`
}

// BatchResult aggregates a multi-URL scrape pass.
type BatchResult struct {
	Scraped int      `json:"scraped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// Scraper fetches research URLs through the Jina Reader proxy, summarizes the
// extracted text, and stores the results.
type Scraper struct {
	client     *resty.Client
	repo       database.ResearchRepository
	summarizer ai.Summarizer
	readerURL  string
	apiKey     string
}

// ScrapeRunner is what the generation job and the scrape-now route depend on.
type ScrapeRunner interface {
	ScrapeAndStore(ctx context.Context, urlID string) (*ScrapeResult, error)
	ScrapeAllActive(ctx context.Context) (*BatchResult, error)
}

var _ ScrapeRunner = (*Scraper)(nil)

func NewScraper(repo database.ResearchRepository, summarizer ai.Summarizer, readerURL, apiKey string) *Scraper {
	return &Scraper{
		client:     resty.New().SetTimeout(45 * time.Second),
		repo:       repo,
		summarizer: summarizer,
		readerURL:  strings.TrimSuffix(readerURL, "/"),
		apiKey:     apiKey,
	}
}

type readerResponse struct {
	Data struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"data"`
}

type scraped struct {
	content   string
	title     string
	wordCount int
}

// scrapeURL fetches one URL through the reader proxy.
func (s *Scraper) scrapeURL(ctx context.Context, target string) (*scraped, error) {
	req := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("X-Return-Format", "markdown")
	if s.apiKey != "" {
		req.SetAuthToken(s.apiKey)
	}

	var result readerResponse
	resp, err := req.SetResult(&result).Get(s.readerURL + "/" + target)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", target, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to scrape %s: %s", target, resp.Status())
	}

	title := result.Data.Title
	if title == "" {
		title = target
	}

	return &scraped{
		content:   result.Data.Content,
		title:     title,
		wordCount: len(strings.Fields(result.Data.Content)),
	}, nil
}

// ScrapeAndStore scrapes one research URL, summarizes it, appends a
// research_content row, and bumps last_scraped.
func (s *Scraper) ScrapeAndStore(ctx context.Context, urlID string) (*ScrapeResult, error) {
	urlConfig, err := s.repo.GetURL(ctx, urlID)
	if err != nil {
		return nil, err
	}
	if urlConfig == nil {
		return nil, fmt.Errorf("URL not found: %s", urlID)
	}

	page, err := s.scrapeURL(ctx, urlConfig.URL)
	if err != nil {
		return nil, err
	}
	if page.content == "" {
		return nil, fmt.Errorf("no content extracted from %s", urlConfig.URL)
	}

	existing, err := s.repo.LatestContent(ctx, urlID)
	if err != nil {
		logger.Warn().Err(err).Str("url_id", urlID).Msg("failed to look up previous scrape")
	}

	// Summarization is best-effort; fall back to a plain marker.
	summary := fmt.Sprintf("Scraped %d words from %s", page.wordCount, urlConfig.Title)
	if s.summarizer != nil {
		if text, err := s.summarizer.Summarize(ctx, page.content, urlConfig.Category); err == nil {
			summary = text
		} else {
			logger.Warn().Err(err).Str("url", urlConfig.URL).Msg("summarization failed, storing without summary")
		}
	}

	raw := page.content
	if len(raw) > rawContentCap {
		raw = raw[:rawContentCap]
	}

	row := &models.ResearchContent{
		ResearchURLID: urlID,
		RawContent:    raw,
		Summary:       summary,
	}
	if err := s.repo.InsertContent(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to store content: %w", err)
	}

	if err := s.repo.TouchLastScraped(ctx, urlID, time.Now()); err != nil {
		logger.Warn().Err(err).Str("url_id", urlID).Msg("failed to update last_scraped")
	}

	return &ScrapeResult{
		ID:      row.ID,
		Summary: row.Summary,
		IsNew:   existing == nil,
	}, nil
}

// ScrapeAllActive scrapes every active research URL sequentially, collecting
// per-URL errors without aborting the pass.
func (s *Scraper) ScrapeAllActive(ctx context.Context) (*BatchResult, error) {
	urls, err := s.repo.ListActiveURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active URLs: %w", err)
	}

	result := &BatchResult{Errors: []string{}}
	for _, u := range urls {
		if _, err := s.ScrapeAndStore(ctx, u.ID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", u.Title, err))
			continue
		}
		result.Scraped++
	}

	return result, nil
}
