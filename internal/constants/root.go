package constants

import "time"

const (
	AppName           = "habitone"
	DefaultConfigPath = "~/.config/habitone/habitone.db"
	Version           = "v0.1.0"

	// HabitsKey is the preference key holding the serialized habit list
	HabitsKey = "habits_key"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// HeaderDateFormat is the long date shown above the habit list
	HeaderDateFormat = "January 2, 2006"

	// ResetCheckInterval is how often the TUI re-runs the daily reset check
	ResetCheckInterval = time.Minute

	// Lock constants
	LockfileName = "habitone.lock"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "habitone.log"

	// Backup constants
	BackupDirName         = "backups"
	BackupTimestampFormat = "20060102-150405"
	MaxBackups            = 14

	// MemoryConfigPath selects the in-memory preference store
	MemoryConfigPath = ":memory:"
)
