package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/lizsears/contentcal/internal/config"
)

// eventDuration is the fixed length of a publishing reminder.
const eventDuration = 30 * time.Minute

// eventTimeZone is the calendar timezone for all events.
const eventTimeZone = "America/Denver"

// EventParams describes the content item being synced.
type EventParams struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Time        string // "9:00 AM" format
	Platform    string
}

// Event is the created calendar entry.
type Event struct {
	EventID  string
	HTMLLink string
}

// Client is the calendar surface handlers depend on.
type Client interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	CreateEventWithAccessToken(ctx context.Context, accessToken string, params EventParams) (*Event, error)
	CreateEventWithRefreshToken(ctx context.Context, refreshToken string, params EventParams) (*Event, error)
	UpdateEvent(ctx context.Context, refreshToken, eventID string, title, description string) error
	DeleteEvent(ctx context.Context, refreshToken, eventID string) error
}

// GoogleClient creates events in a Google Calendar via OAuth.
type GoogleClient struct {
	oauth      *oauth2.Config
	calendarID string
}

var _ Client = (*GoogleClient)(nil)

func NewGoogleClient(cfg *config.Config) *GoogleClient {
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{calendarapi.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		calendarID: cfg.GoogleCalendarID,
	}
}

// AuthURL returns the consent URL. Offline access with forced consent so a
// refresh token is always issued.
func (g *GoogleClient) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a refresh token.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (string, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("oauth code exchange failed: %w", err)
	}
	if token.RefreshToken == "" {
		return "", fmt.Errorf("no refresh token in oauth response")
	}
	return token.RefreshToken, nil
}

func (g *GoogleClient) CreateEventWithAccessToken(ctx context.Context, accessToken string, params EventParams) (*Event, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return g.createEvent(ctx, source, params)
}

func (g *GoogleClient) CreateEventWithRefreshToken(ctx context.Context, refreshToken string, params EventParams) (*Event, error) {
	source := g.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	return g.createEvent(ctx, source, params)
}

func (g *GoogleClient) createEvent(ctx context.Context, source oauth2.TokenSource, params EventParams) (*Event, error) {
	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	start := parsePublishDateTime(params.Date, params.Time)
	end := start.Add(eventDuration)

	event := &calendarapi.Event{
		Summary:     fmt.Sprintf("[%s] %s", params.Platform, params.Title),
		Description: params.Description,
		Start: &calendarapi.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: eventTimeZone,
		},
		End: &calendarapi.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: eventTimeZone,
		},
		ColorId: platformColorID(params.Platform),
	}

	created, err := svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return &Event{EventID: created.Id, HTMLLink: created.HtmlLink}, nil
}

func (g *GoogleClient) UpdateEvent(ctx context.Context, refreshToken, eventID string, title, description string) error {
	source := g.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	patch := &calendarapi.Event{}
	if title != "" {
		patch.Summary = title
	}
	if description != "" {
		patch.Description = description
	}

	if _, err := svc.Events.Patch(g.calendarID, eventID, patch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to patch calendar event: %w", err)
	}
	return nil
}

func (g *GoogleClient) DeleteEvent(ctx context.Context, refreshToken, eventID string) error {
	source := g.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	svc, err := calendarapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	if err := svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// parsePublishDateTime combines a date and a "9:00 AM" style time in the event
// timezone. Unparseable times fall back to 9:00 AM.
func parsePublishDateTime(dateStr, timeStr string) time.Time {
	loc, err := time.LoadLocation(eventTimeZone)
	if err != nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		date = time.Now().In(loc)
	}

	clock, err := time.Parse("3:04 PM", timeStr)
	if err != nil {
		clock, _ = time.Parse("3:04 PM", "9:00 AM")
	}

	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}

// platformColorID maps a platform to a Google Calendar color.
func platformColorID(platform string) string {
	switch platform {
	case "IGFB":
		return "7" // Peacock
	case "LinkedIn":
		return "1" // Lavender
	case "Blog":
		return "9" // Blueberry
	case "YouTube":
		return "11" // Tomato
	case "X":
		return "8" // Graphite
	default:
		return "0"
	}
}
