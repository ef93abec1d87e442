package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string `json:"timezone"`         // IANA timezone name (e.g. "Asia/Tokyo", or "Local" for system timezone)
	ReminderEnabled bool   `json:"reminder_enabled"` // whether to remind when today's mood is missing
	ReminderTime    string `json:"reminder_time"`    // HH:MM after which the reminder fires
}
