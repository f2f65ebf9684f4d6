// Package app wires config, storage and the uv launcher into the scaffold workflow.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/uvpkg/internal/config"
	"github.com/wizzomafizzo/uvpkg/internal/constants"
	"github.com/wizzomafizzo/uvpkg/internal/history"
	"github.com/wizzomafizzo/uvpkg/internal/logging"
	"github.com/wizzomafizzo/uvpkg/internal/prompt"
	"github.com/wizzomafizzo/uvpkg/internal/scaffold"
	"github.com/wizzomafizzo/uvpkg/internal/storage"
)

// ErrProgrammingDirMissing is returned when the configured root is absent or not a directory.
var ErrProgrammingDirMissing = errors.New("programming directory does not exist")

// App runs uvpkg operations
type App struct {
	fs       afero.Fs
	storage  *storage.Manager
	prompter prompt.Prompter
	tool     Tool
	history  Recorder
	out      io.Writer
}

// Result describes a scaffold run
type Result struct {
	PackageName    string
	ProgrammingDir string
	PackagePath    string
	ToolPath       string
	Args           []string
	DryRun         bool
}

// Create scaffolds packageName in the configured programming directory
func (a *App) Create(ctx context.Context, packageName string, dryRun bool) (*Result, error) {
	logger := logging.Get(ctx)

	if err := scaffold.ValidatePackageName(packageName); err != nil {
		return nil, err
	}

	toolPath, err := a.tool.GetPath()
	if err != nil {
		return nil, err //nolint:wrapcheck // NotFoundError carries the full explanation
	}

	cfg, err := a.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	root := a.storage.ExpandHome(cfg.ProgrammingDir)
	isDir, err := afero.IsDir(a.fs, root)
	if err != nil || !isDir {
		return nil, fmt.Errorf("%w: %s", ErrProgrammingDirMissing, root)
	}

	exists, err := scaffold.Exists(a.fs, root, packageName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &scaffold.PackageExistsError{Name: packageName, Dir: cfg.ProgrammingDir}
	}

	result := &Result{
		PackageName:    packageName,
		ProgrammingDir: root,
		PackagePath:    scaffold.PackagePath(root, packageName),
		ToolPath:       toolPath,
		Args:           constants.InitArgs(packageName),
		DryRun:         dryRun,
	}

	if dryRun {
		logger.Info().Str("package", packageName).Str("dir", root).Msg("Dry run, skipping tool")
		return result, nil
	}

	if err := a.tool.Init(ctx, root, packageName); err != nil {
		return nil, err //nolint:wrapcheck // launcher errors are already descriptive
	}

	logger.Info().Str("package", packageName).Str("dir", root).Msg("Package scaffolded")

	if a.history != nil {
		if _, err := a.history.Record(ctx, history.Entry{
			PackageName:    packageName,
			ProgrammingDir: root,
		}); err != nil {
			logger.Warn().Err(err).Msg("Failed to record package history")
		}
	}

	return result, nil
}

// LoadConfig returns the stored config, prompting for it on first run
func (a *App) LoadConfig(ctx context.Context) (*config.Config, error) {
	supportDir, err := a.storage.GetDataDir()
	if err != nil {
		return nil, err //nolint:wrapcheck // storage errors name the directory
	}

	cfg, err := config.NewLoader(a.fs, a.prompter, a.out).Load(ctx, supportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// SetProgrammingDir replaces the configured programming directory
func (a *App) SetProgrammingDir(ctx context.Context, dir string) (*config.Config, error) {
	path, err := a.ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{ProgrammingDir: dir}
	if err := config.Write(a.fs, path, cfg); err != nil {
		return nil, err //nolint:wrapcheck // config errors are already wrapped
	}

	logging.Get(ctx).Info().Str(constants.ProgrammingDirKey, dir).Msg("Updated config")
	return cfg, nil
}

// ConfigPath returns the location of the config file
func (a *App) ConfigPath() (string, error) {
	return a.storage.GetConfigPath() //nolint:wrapcheck // storage errors name the directory
}
