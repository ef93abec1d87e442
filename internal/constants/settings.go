package constants

const (
	// Settings keys
	SettingTimezone        = "timezone"
	SettingReminderEnabled = "reminder_enabled"
	SettingReminderTime    = "reminder_time"

	// Default Settings Values
	DefaultTimezone        = "Local" // Use system local timezone by default
	DefaultReminderEnabled = true
	DefaultReminderTime    = "21:00"
	DefaultThemeID         = "midnight"
)
