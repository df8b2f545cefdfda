package models

import "time"

// ResearchCategory groups research sources by what they inform.
type ResearchCategory string

const (
	CategoryMarketResearch     ResearchCategory = "Market Research"
	CategoryLocalNews          ResearchCategory = "Local News"
	CategoryIndustryTrends     ResearchCategory = "Industry Trends"
	CategoryCompetitorAnalysis ResearchCategory = "Competitor Analysis"
	CategoryGeneral            ResearchCategory = "General"
)

// Valid reports whether c is a known research category.
func (c ResearchCategory) Valid() bool {
	switch c {
	case CategoryMarketResearch, CategoryLocalNews, CategoryIndustryTrends,
		CategoryCompetitorAnalysis, CategoryGeneral:
		return true
	}
	return false
}

// ScrapeFrequency controls how often a research URL should be scraped.
type ScrapeFrequency string

const (
	FrequencyDaily   ScrapeFrequency = "daily"
	FrequencyWeekly  ScrapeFrequency = "weekly"
	FrequencyMonthly ScrapeFrequency = "monthly"
)

// Valid reports whether f is a known scrape frequency.
func (f ScrapeFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ResearchURL is a source to scrape for topic inspiration.
type ResearchURL struct {
	ID              string           `json:"id"`
	UserID          string           `json:"-"`
	URL             string           `json:"url"`
	Title           string           `json:"title"`
	Category        ResearchCategory `json:"category"`
	ScrapeFrequency ScrapeFrequency  `json:"scrapeFrequency"`
	IsActive        bool             `json:"isActive"`
	LastScraped     *time.Time       `json:"lastScraped"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ResearchURLUpdate carries the fields of a partial update. Nil means "leave as is".
type ResearchURLUpdate struct {
	URL             *string
	Title           *string
	Category        *ResearchCategory
	ScrapeFrequency *ScrapeFrequency
	IsActive        *bool
}

// ResearchContent is one scrape attempt. Rows are append-only.
type ResearchContent struct {
	ID            string    `json:"id"`
	ResearchURLID string    `json:"researchUrlId"`
	RawContent    string    `json:"-"`
	Summary       string    `json:"summary"`
	ScrapedAt     time.Time `json:"scrapedAt"`
}

// ResearchSnippet is a summary joined with its source metadata, as consumed by
// the research context builder.
type ResearchSnippet struct {
	Category  ResearchCategory
	Title     string
	URL       string
	Summary   string
	ScrapedAt time.Time
}
