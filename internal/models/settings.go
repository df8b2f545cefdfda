package models

// UserSettings is the per-user configuration singleton. The Google refresh
// token is stored here after the OAuth callback and never returned to clients.
type UserSettings struct {
	UserID               string `json:"-"`
	WeeklyGenerationDay  int    `json:"weeklyGenerationDay"` // 0 = Sunday
	WeeklyGenerationTime string `json:"weeklyGenerationTime"`
	AutoApproveEnabled   bool   `json:"autoApproveEnabled"`
	NotificationEmail    string `json:"notificationEmail"`
	GoogleRefreshToken   string `json:"-"`
}

// DefaultSettings returns the settings a user has before saving any.
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:               userID,
		WeeklyGenerationDay:  0,
		WeeklyGenerationTime: "18:00",
	}
}
