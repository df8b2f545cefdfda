package models

import "time"

// Platform identifies where a content item will be published.
type Platform string

const (
	PlatformIGFB     Platform = "IGFB"
	PlatformLinkedIn Platform = "LinkedIn"
	PlatformBlog     Platform = "Blog"
	PlatformYouTube  Platform = "YouTube"
	PlatformX        Platform = "X"
)

// Platforms lists every supported platform.
var Platforms = []Platform{PlatformIGFB, PlatformLinkedIn, PlatformBlog, PlatformYouTube, PlatformX}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformIGFB, PlatformLinkedIn, PlatformBlog, PlatformYouTube, PlatformX:
		return true
	}
	return false
}

// ContentType categorizes a content item.
type ContentType string

const (
	TypeLocal        ContentType = "Local"
	TypeMarket       ContentType = "Market"
	TypeEducational  ContentType = "Educational"
	TypePersonal     ContentType = "Personal"
	TypePromotional  ContentType = "Promotional"
	TypeProfessional ContentType = "Professional"
	TypeCommunity    ContentType = "Community"
	TypeReflection   ContentType = "Reflection"
	TypeInsight      ContentType = "Insight"
	TypeGuide        ContentType = "Guide"
	TypeSafety       ContentType = "Safety"
)

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	switch t {
	case TypeLocal, TypeMarket, TypeEducational, TypePersonal, TypePromotional,
		TypeProfessional, TypeCommunity, TypeReflection, TypeInsight, TypeGuide, TypeSafety:
		return true
	}
	return false
}

// ContentStatus tracks the review lifecycle of an item. Transitions are made by
// individual route calls rather than a strict state machine.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusApproved  ContentStatus = "approved"
	StatusScheduled ContentStatus = "scheduled"
	StatusPublished ContentStatus = "published"
)

// Valid reports whether s is a known content status.
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusScheduled, StatusPublished:
		return true
	}
	return false
}

// ContentItem is one scheduled social/blog post.
type ContentItem struct {
	ID              string        `json:"id"`
	UserID          string        `json:"-"`
	Platform        Platform      `json:"platform"`
	ContentType     ContentType   `json:"contentType"`
	Topic           string        `json:"topic"`
	GeneratedText   string        `json:"generatedText"`
	PublishDate     string        `json:"publishDate"` // YYYY-MM-DD
	PublishTime     string        `json:"publishTime"` // e.g. "9:00 AM"
	Status          ContentStatus `json:"status"`
	Owner           string        `json:"owner"`
	CalendarEventID string        `json:"calendarEventId,omitempty"`
	Embedding       []float64     `json:"-"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// ContentUpdate carries the fields of a partial update. Nil means "leave as is".
type ContentUpdate struct {
	Platform      *Platform
	ContentType   *ContentType
	Topic         *string
	GeneratedText *string
	PublishDate   *string
	PublishTime   *string
	Status        *ContentStatus
	Owner         *string
}

// ContentEmbedding pairs a stored embedding with its item for similarity search.
type ContentEmbedding struct {
	ID        string
	Topic     string
	Embedding []float64
}

// ContentFilter narrows content listings. Zero values mean "no filter".
type ContentFilter struct {
	Status    ContentStatus
	Platform  Platform
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}
