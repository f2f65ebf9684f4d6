package main

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/uvpkg/internal/app"
	"github.com/wizzomafizzo/uvpkg/internal/history"
	"github.com/wizzomafizzo/uvpkg/internal/launcher"
	"github.com/wizzomafizzo/uvpkg/internal/logging"
	"github.com/wizzomafizzo/uvpkg/internal/prompt"
	"github.com/wizzomafizzo/uvpkg/internal/storage"
)

// environment holds the process-level dependencies commands are built from
type environment struct {
	fs          afero.Fs
	storage     *storage.Manager
	locator     launcher.Locator
	newPrompter func() prompt.Prompter
	logWriter   io.Writer // replaces the rotated log file when set
	fallbacks   []string
}

func defaultEnvironment() *environment {
	fs := afero.NewOsFs()
	store := storage.New(fs)
	return &environment{
		fs:          fs,
		storage:     store,
		locator:     launcher.ExecLocator{},
		fallbacks:   launcher.DefaultLocations(store.Home()),
		newPrompter: prompt.NewLinerPrompter,
	}
}

// withLogger attaches a logger to the command context, at debug level with --verbose
func (e *environment) withLogger(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err //nolint:wrapcheck // flag is registered on the root command
	}

	level := logging.InfoLevel
	if verbose {
		level = logging.DebugLevel
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, err = logging.New(ctx, e.storage, logging.Config{Writer: e.logWriter, Level: level})
	if err != nil {
		return err //nolint:wrapcheck // logging errors name the path
	}
	cmd.SetContext(ctx)
	return nil
}

// newApp builds an App writing tool output to the command's streams. The returned
// cleanup closes the prompter and history database.
func (e *environment) newApp(cmd *cobra.Command, withHistory bool) (*app.App, func(), error) {
	ctx := cmd.Context()
	lazy := prompt.NewLazy(e.newPrompter)

	var recorder app.Recorder
	var historyDB *history.Manager
	if withHistory {
		var err error
		historyDB, err = e.openHistory(ctx)
		if err != nil {
			logging.Get(ctx).Warn().Err(err).Msg("History unavailable")
		} else {
			recorder = historyDB
		}
	}

	cleanup := func() {
		_ = lazy.Close()
		if historyDB != nil {
			_ = historyDB.Close()
		}
	}

	tool := launcher.NewLauncher(e.locator, e.fallbacks...).
		WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	a, err := app.NewAppWithOptions(app.AppOptions{
		Fs:       e.fs,
		Storage:  e.storage,
		Prompter: lazy,
		Tool:     tool,
		History:  recorder,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err //nolint:wrapcheck // option errors are self-describing
	}

	return a, cleanup, nil
}

func (e *environment) openHistory(ctx context.Context) (*history.Manager, error) {
	dbPath, err := e.storage.GetHistoryPath()
	if err != nil {
		return nil, err //nolint:wrapcheck // storage errors name the directory
	}
	return history.Open(ctx, dbPath) //nolint:wrapcheck // history errors are wrapped
}
