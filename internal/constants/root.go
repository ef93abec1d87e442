package constants

import (
	"time"
)

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "moodcal"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/moodcal/moodcal.db"
	Version            = "v0.3.0"

	// EnvDBConnection overrides the PostgreSQL connection string when set
	EnvDBConnection = "MOODCAL_DB_CONNECTION"
	// EnvLogLevel overrides the log file threshold (debug, info, warn, error)
	EnvLogLevel = "MOODCAL_LOG_LEVEL"

	// DateFormat is the canonical date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format used to name a calendar month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is ISO-8601 with millisecond precision, used for createdAt in UTC
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage keys. The journal and the theme live under independent keys.
	EntriesKey       = "moodEntries"
	ThemeKey         = "moodTheme"
	SettingsKey      = "moodSettings"
	ReminderSentKey  = "moodReminderSent"
	CorruptKeyPrefix = EntriesKey + ".corrupt."

	// Journal limits
	NoteMaxLen = 120
	TrendDays  = 7

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "moodcal-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "moodcal-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.moodcal"
	TrayExecutablePrefix   = "moodcal-tray"

	// Vent animation
	VentFrameCount    = 12
	VentFrameInterval = 120 * time.Millisecond
)

// Session States
const (
	StateCalendar SessionState = iota
	StateAnalysis
	StateThemes
	StateVent
	StateSettings
	StateEditing
	StateEditSettings
)
