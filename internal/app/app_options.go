package app

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/uvpkg/internal/history"
	"github.com/wizzomafizzo/uvpkg/internal/prompt"
	"github.com/wizzomafizzo/uvpkg/internal/storage"
)

// Tool locates and runs the external package manager
type Tool interface {
	GetPath() (string, error)
	Init(ctx context.Context, dir, packageName string) error
}

// Recorder stores successful scaffolds
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (*history.Entry, error)
}

// AppOptions contains the dependencies of an App
type AppOptions struct {
	Fs       afero.Fs
	Storage  *storage.Manager
	Prompter prompt.Prompter
	Tool     Tool
	History  Recorder
	Out      io.Writer
}

// NewAppWithOptions creates a new App with the given options
func NewAppWithOptions(opts AppOptions) (*App, error) {
	if opts.Fs == nil {
		return nil, errors.New("filesystem is required")
	}
	if opts.Storage == nil {
		return nil, errors.New("storage manager is required")
	}
	if opts.Tool == nil {
		return nil, errors.New("tool is required")
	}
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required")
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &App{
		fs:       opts.Fs,
		storage:  opts.Storage,
		prompter: opts.Prompter,
		tool:     opts.Tool,
		history:  opts.History,
		out:      out,
	}, nil
}
