package generation

import (
	"time"

	"github.com/lizsears/contentcal/internal/models"
)

// Slot is one entry of the weekly publishing template: which platform posts
// what kind of content on which day.
type Slot struct {
	DayOffset   int
	Platform    models.Platform
	ContentType models.ContentType
	PublishTime string
}

// WeeklySchedule is the fixed 12-slot template a generation run walks through.
var WeeklySchedule = []Slot{
	// Monday
	{DayOffset: 0, Platform: models.PlatformIGFB, ContentType: models.TypeLocal, PublishTime: "9:00 AM"},
	{DayOffset: 0, Platform: models.PlatformLinkedIn, ContentType: models.TypeMarket, PublishTime: "10:00 AM"},
	// Tuesday
	{DayOffset: 1, Platform: models.PlatformIGFB, ContentType: models.TypeEducational, PublishTime: "9:00 AM"},
	{DayOffset: 1, Platform: models.PlatformBlog, ContentType: models.TypeEducational, PublishTime: "2:00 PM"},
	// Wednesday
	{DayOffset: 2, Platform: models.PlatformIGFB, ContentType: models.TypePersonal, PublishTime: "9:00 AM"},
	{DayOffset: 2, Platform: models.PlatformLinkedIn, ContentType: models.TypeProfessional, PublishTime: "10:00 AM"},
	// Thursday
	{DayOffset: 3, Platform: models.PlatformIGFB, ContentType: models.TypeMarket, PublishTime: "9:00 AM"},
	{DayOffset: 3, Platform: models.PlatformYouTube, ContentType: models.TypeEducational, PublishTime: "3:00 PM"},
	// Friday
	{DayOffset: 4, Platform: models.PlatformIGFB, ContentType: models.TypePromotional, PublishTime: "9:00 AM"},
	{DayOffset: 4, Platform: models.PlatformLinkedIn, ContentType: models.TypeInsight, PublishTime: "10:00 AM"},
	// Saturday
	{DayOffset: 5, Platform: models.PlatformIGFB, ContentType: models.TypeCommunity, PublishTime: "10:00 AM"},
	// Sunday
	{DayOffset: 6, Platform: models.PlatformIGFB, ContentType: models.TypeReflection, PublishTime: "11:00 AM"},
}

// FilterSchedule narrows the template to the requested platforms. A nil or
// empty platform list keeps every slot.
func FilterSchedule(platforms []models.Platform) []Slot {
	if len(platforms) == 0 {
		return WeeklySchedule
	}

	wanted := make(map[models.Platform]bool, len(platforms))
	for _, p := range platforms {
		wanted[p] = true
	}

	var slots []Slot
	for _, slot := range WeeklySchedule {
		if wanted[slot.Platform] {
			slots = append(slots, slot)
		}
	}
	return slots
}

// addDays computes the publish date for a slot from the week start date.
func addDays(dateStr string, days int) (string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", err
	}
	return date.AddDate(0, 0, days).Format("2006-01-02"), nil
}
