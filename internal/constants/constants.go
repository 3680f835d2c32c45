package constants

import "time"

const (
	AppName            = "harmony"
	Version            = "v0.1.0"
	DefaultConfigDir   = "~/.config/harmony"
	DefaultStorePath   = "~/.config/harmony/harmony.db"
	DefaultConfigFile  = "config.yaml"
	DefaultKeyringUser = "database-connection"
	KeyringSessionUser = "session"
	KeyringAPIKeyUser  = "gemini-api-key"

	// LocalUserID owns the document when nobody is signed in.
	LocalUserID = "local"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MissingStartTime sorts tasks without a start time after every real clock value.
	MissingStartTime = "99:99"

	// Quick-add defaults
	DefaultTaskTitle    = "New Activity"
	DefaultTaskDuration = 30

	// Duration input bounds, in minutes
	MinDurationMin  = 15
	MaxDurationMin  = 480
	DurationStepMin = 15

	// FocusStripDays is the number of days shown in the focus date strip, starting yesterday.
	FocusStripDays = 15

	// Gemini models
	DefaultRoutineModel   = "gemini-3-flash-preview"
	DefaultBreakdownModel = "gemini-3-pro-preview"
	DefaultChatModel      = "gemini-3-pro-preview"
	APIKeyEnv             = "API_KEY"

	// Chat transcript texts
	ChatErrorText       = "Error in chat logic."
	ChatAddedTaskPrefix = "- Added task: "
	AddTaskToolName     = "addTask"

	// Identity
	GoogleDeviceAuthURL = "https://oauth2.googleapis.com/device/code"
	GoogleTokenURL      = "https://oauth2.googleapis.com/token"
	GoogleAuthURL       = "https://accounts.google.com/o/oauth2/auth"
	GoogleUserInfoURL   = "https://openidconnect.googleapis.com/v1/userinfo"

	// Sync
	DefaultSyncSchedule = "@every 1m"
	SyncLockfileName    = "harmony-sync.lock"

	LogDirName = "logs"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "harmony-"
	BackupFileSuffix = ".json"

	// PostgreSQL pool
	PostgresMaxOpenConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute
)

// Off-time labels assigned on creation
const (
	OffTimeLabelWeekend = "Weekend Off"
	OffTimeLabelSingle  = "Day Off"
	OffTimeLabelRange   = "Vacation"
)
