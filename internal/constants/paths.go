// Package constants contains names shared by the uvpkg packages.
package constants

const (
	// AppName is the application support directory name.
	AppName = "uvpkg"

	// LibraryDir and SupportDir form the macOS application support path under the home directory.
	LibraryDir = "Library"
	SupportDir = "Application Support"

	// ConfigFilename is the JSON config file stored in the application support directory.
	ConfigFilename = "config.json"

	// LogFilename is the rotated log file stored next to the config.
	LogFilename = "uvpkg.log"

	// HistoryFilename is the SQLite database recording scaffolded packages.
	HistoryFilename = "history.db"

	// HomeEnvVar overrides the home directory used to locate the support directory.
	HomeEnvVar = "UVPKG_HOME"
)
