// Package constants provides shared constants used throughout the shelf codebase.
// This includes file permissions, limits and user-facing defaults that
// should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Data file constants
const (
	// DataFileSuffix is the case-sensitive suffix every library data file must carry
	DataFileSuffix = ".csv"

	// DataFileFormat names the data file format in parse errors
	DataFileFormat = "csv"

	// MaxLineBytes caps the length of a single data file line
	MaxLineBytes = 1024 * 1024
)

// Interactive session defaults
const (
	// AppName is the program name used in help output and config lookup
	AppName = "shelf"

	// ConfigName is the config file base name searched in $HOME and the working directory
	ConfigName = ".shelf"

	// EnvPrefix is the prefix for shelf environment variables (SHELF_PROMPT, ...)
	EnvPrefix = "SHELF"

	// DefaultPrompt is the prompt shown by the interactive loop
	DefaultPrompt = "> "

	// DefaultHistoryFile is the readline history file, relative to the user's home
	DefaultHistoryFile = ".shelf_history"
)
