package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "huddle"
	DefaultConfigPath = "~/.config/huddle/huddle.db"
	Version           = "v0.1.0"

	// PaletteSize is the number of distinct participant colors before they repeat
	PaletteSize = 8

	// SavedResetDelay is how long the entry view shows "Saved!" before resetting
	SavedResetDelay = 3 * time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "huddle-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "huddle.log"

	ClearConfirmMessage = "Are you sure you want to clear all submission data? This cannot be undone."
)

// Session States. The first two are the visible tabs, in tab order.
const (
	StateEntry SessionState = iota
	StateResults
	StateEditName
	StateConfirmClear
)

// TabCount is the number of top-level tabs
const TabCount = 2
