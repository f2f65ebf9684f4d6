// Package storage resolves the per-user application support directory for uvpkg.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/uvpkg/internal/constants"
)

// ErrEmptyAppName is returned when an application name is blank.
var ErrEmptyAppName = errors.New("application name must not be empty")

// Manager handles support directory operations with filesystem abstraction
type Manager struct {
	fs   afero.Fs
	home string
}

// New creates a storage manager rooted at the current user's home directory.
// UVPKG_HOME takes precedence over the detected home.
func New(fs afero.Fs) *Manager {
	home := xdg.Home
	if v := os.Getenv(constants.HomeEnvVar); v != "" {
		home = v
	}
	return NewWithHome(fs, home)
}

// NewWithHome creates a storage manager rooted at the given home directory
func NewWithHome(fs afero.Fs, home string) *Manager {
	return &Manager{fs: fs, home: home}
}

// Home returns the home directory the manager resolves paths against
func (m *Manager) Home() string {
	return m.home
}

// AppSupportDir returns <home>/Library/Application Support/<appName>, creating it if necessary
func (m *Manager) AppSupportDir(appName string) (string, error) {
	if strings.TrimSpace(appName) == "" {
		return "", ErrEmptyAppName
	}

	dir := filepath.Join(m.home, constants.LibraryDir, constants.SupportDir, appName)
	if err := m.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create support directory %s: %w", dir, err)
	}
	return dir, nil
}

// GetDataDir returns the uvpkg support directory
func (m *Manager) GetDataDir() (string, error) {
	return m.AppSupportDir(constants.AppName)
}

// GetConfigPath returns the full path to the uvpkg config file
func (m *Manager) GetConfigPath() (string, error) {
	return m.join(constants.ConfigFilename)
}

// GetLogPath returns the full path to the uvpkg log file
func (m *Manager) GetLogPath() (string, error) {
	return m.join(constants.LogFilename)
}

// GetHistoryPath returns the full path to the history database
func (m *Manager) GetHistoryPath() (string, error) {
	return m.join(constants.HistoryFilename)
}

func (m *Manager) join(name string) (string, error) {
	dataDir, err := m.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}

// ExpandHome replaces a leading "~" in path with the manager's home directory
func (m *Manager) ExpandHome(path string) string {
	if path == "~" {
		return m.home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(m.home, path[2:])
	}
	return path
}
