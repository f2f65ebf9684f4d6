// Package config reads and creates the uvpkg JSON config file.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/wizzomafizzo/uvpkg/internal/constants"
	"github.com/wizzomafizzo/uvpkg/internal/logging"
	"github.com/wizzomafizzo/uvpkg/internal/prompt"
)

// ErrEmptyProgrammingDir is returned when no programming directory is configured.
var ErrEmptyProgrammingDir = errors.New("programming directory path cannot be empty")

// Config holds the user's uvpkg settings.
type Config struct {
	ProgrammingDir string `json:"programming_dir" yaml:"programming_dir" mapstructure:"programming_dir"`
}

// Validate checks that the programming directory is set
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProgrammingDir) == "" {
		return ErrEmptyProgrammingDir
	}
	return nil
}

// Path returns the config file location inside the support directory
func Path(supportDir string) string {
	return filepath.Join(supportDir, constants.ConfigFilename)
}

// Read loads an existing config file without modifying it
func Read(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for %s: %w", path, err)
	}

	return &cfg, nil
}

// Write stores cfg as JSON indented with four spaces
func Write(fs afero.Fs, path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, bytes.TrimRight(buf.Bytes(), "\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Loader reads the config file, asking for the programming directory on first run
type Loader struct {
	fs       afero.Fs
	prompter prompt.Prompter
	out      io.Writer
}

// NewLoader creates a loader that prompts through prompter and prints notices to out
func NewLoader(fs afero.Fs, prompter prompt.Prompter, out io.Writer) *Loader {
	return &Loader{fs: fs, prompter: prompter, out: out}
}

// Load returns the config stored in supportDir, creating it interactively if missing
func (l *Loader) Load(ctx context.Context, supportDir string) (*Config, error) {
	path := Path(supportDir)
	logger := logging.Get(ctx)

	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		logger.Debug().Str("path", path).Msg("Loading existing config")
		return Read(l.fs, path)
	}

	_, _ = fmt.Fprintln(l.out, "Config file not found. Creating new config.")
	_, _ = fmt.Fprintln(l.out, "Please enter the programming directory path:")

	programmingDir, err := prompt.TextInputWithPrompter(l.prompter, ">")
	if err != nil {
		return nil, fmt.Errorf("failed to read programming directory: %w", err)
	}
	if programmingDir == "" {
		return nil, ErrEmptyProgrammingDir
	}

	cfg := &Config{ProgrammingDir: programmingDir}
	if err := Write(l.fs, path, cfg); err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Str(constants.ProgrammingDirKey, programmingDir).
		Msg("Created config")

	return cfg, nil
}
