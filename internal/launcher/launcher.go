// Package launcher locates the uv executable and runs it.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wizzomafizzo/uvpkg/internal/constants"
	"github.com/wizzomafizzo/uvpkg/internal/logging"
)

// Locator finds an executable by name
type Locator interface {
	LookPath(file string) (string, error)
}

// ExecLocator searches the PATH environment variable
type ExecLocator struct{}

// LookPath implements Locator using exec.LookPath
func (ExecLocator) LookPath(file string) (string, error) {
	return exec.LookPath(file) //nolint:wrapcheck // direct exec wrapper
}

// DefaultLocations returns install locations checked when uv is not on PATH
func DefaultLocations(home string) []string {
	locations := make([]string, 0, 4)
	if home != "" {
		locations = append(locations,
			filepath.Join(home, ".local", "bin", constants.ToolName), // uv standalone installer
			filepath.Join(home, ".cargo", "bin", constants.ToolName), // older installer and cargo
		)
	}
	return append(locations,
		"/opt/homebrew/bin/"+constants.ToolName,
		"/usr/local/bin/"+constants.ToolName,
	)
}

// Launcher handles uv binary discovery and execution
type Launcher struct {
	locator   Locator
	stdout    io.Writer
	stderr    io.Writer
	name      string
	fallbacks []string
}

// NewLauncher creates a launcher that asks locator first and then tries fallbacks
func NewLauncher(locator Locator, fallbacks ...string) *Launcher {
	return &Launcher{
		locator:   locator,
		name:      constants.ToolName,
		fallbacks: fallbacks,
		stdout:    io.Discard,
		stderr:    io.Discard,
	}
}

// WithOutput sets where the tool's stdout and stderr are streamed
func (l *Launcher) WithOutput(stdout, stderr io.Writer) *Launcher {
	l.stdout = stdout
	l.stderr = stderr
	return l
}

// GetPath returns the path to the uv binary
func (l *Launcher) GetPath() (string, error) {
	attemptedPaths := make([]string, 0, len(l.fallbacks)+1)

	if path, err := l.locator.LookPath(l.name); err == nil {
		return path, nil
	}
	attemptedPaths = append(attemptedPaths, "PATH: not found")

	for _, location := range l.fallbacks {
		attemptedPaths = append(attemptedPaths, "fallback: "+location)

		if err := validateBinary(location); err == nil {
			return location, nil
		}
	}

	return "", &NotFoundError{
		Name:           l.name,
		AttemptedPaths: attemptedPaths,
	}
}

// Init runs "uv init --package <packageName>" with dir as the working directory
func (l *Launcher) Init(ctx context.Context, dir, packageName string) error {
	path, err := l.GetPath()
	if err != nil {
		return fmt.Errorf("failed to locate %s binary: %w", l.name, err)
	}

	args := constants.InitArgs(packageName)

	// #nosec G204 -- path comes from the locator, args are fixed apart from the package name
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	logger := logging.Get(ctx)
	logger.Debug().
		Str("tool_path", path).
		Strs("args", args).
		Str("dir", dir).
		Msg("Executing tool command")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Error().
				Str("tool_path", path).
				Strs("args", args).
				Int("exit_code", exitErr.ExitCode()).
				Msg("Tool command failed")
			return &ExitError{Name: l.name, Args: args, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to execute %s: %w", l.name, err)
	}

	logger.Debug().Str("tool_path", path).Msg("Tool command succeeded")
	return nil
}

// validateBinary checks if the given path is a valid, executable file
func validateBinary(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("file does not exist")
		}
		return fmt.Errorf("cannot stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return errors.New("not a regular file")
	}

	if info.Mode().Perm()&0o111 == 0 {
		return errors.New("file is not executable")
	}

	return nil
}

// NotFoundError provides detailed information when the tool cannot be located
type NotFoundError struct {
	Name           string
	AttemptedPaths []string
}

func (e *NotFoundError) Error() string {
	var msg strings.Builder
	_, _ = fmt.Fprintf(&msg, "'%s' command-line tool is not installed or not found in PATH. Attempted locations:\n", e.Name)

	for _, path := range e.AttemptedPaths {
		_, _ = fmt.Fprintf(&msg, "  - %s\n", path)
	}

	_, _ = msg.WriteString("\nInstall it from https://docs.astral.sh/uv/getting-started/installation/\n")

	return msg.String()
}

// IsNotFoundError returns true if the error is a NotFoundError
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// ExitError reports a tool run that finished with a non-zero status
type ExitError struct {
	Name string
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s %s exited with status %d", e.Name, strings.Join(e.Args, " "), e.Code)
}
