package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/uvpkg/internal/config"
	"github.com/wizzomafizzo/uvpkg/internal/history"
	"github.com/wizzomafizzo/uvpkg/internal/launcher"
	"github.com/wizzomafizzo/uvpkg/internal/prompt"
	"github.com/wizzomafizzo/uvpkg/internal/scaffold"
	"github.com/wizzomafizzo/uvpkg/internal/storage"
	"github.com/wizzomafizzo/uvpkg/internal/testutil"
)

// scriptedPrompter answers every prompt with the same line
type scriptedPrompter struct {
	answer string
}

func (s *scriptedPrompter) Prompt(_ string) (string, error) { return s.answer, nil }

func (*scriptedPrompter) Close() error { return nil }

type testEnv struct {
	*environment
	home string
	root string
}

// newTestEnvironment builds an environment on a temporary home with the given tool path
func newTestEnvironment(t *testing.T, toolPath, answer string) *testEnv {
	t.Helper()

	home := t.TempDir()
	root := filepath.Join(home, "code")
	require.NoError(t, os.MkdirAll(root, 0o750))

	fs := afero.NewOsFs()
	return &testEnv{
		environment: &environment{
			fs:          fs,
			storage:     storage.NewWithHome(fs, home),
			locator:     testutil.StaticLocator{Path: toolPath},
			newPrompter: func() prompt.Prompter { return &scriptedPrompter{answer: answer} },
			logWriter:   io.Discard,
		},
		home: home,
		root: root,
	}
}

func (e *testEnv) writeConfig(t *testing.T) {
	t.Helper()

	path, err := e.storage.GetConfigPath()
	require.NoError(t, err)
	require.NoError(t, config.Write(e.fs, path, &config.Config{ProgrammingDir: e.root}))
}

func execute(t *testing.T, env *environment, args ...string) (string, error) {
	t.Helper()

	cmd := createNewRootCommand(env)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCreateRootCommand(t *testing.T) {
	t.Parallel()

	cmd := createNewRootCommand(defaultEnvironment())

	assert.Equal(t, "uvpkg", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	require.NotNil(t, cmd.RunE)

	for _, path := range [][]string{{"config"}, {"config", "show"}, {"config", "set"}, {"config", "path"}, {"history"}} {
		found, _, err := cmd.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestRootCommand_RequiresOneArgument(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "", "")

	_, err := execute(t, env.environment)
	require.Error(t, err)

	_, err = execute(t, env.environment, "a", "b")
	require.Error(t, err)
}

func TestRootCommand_HelpFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "", "")

	output, err := execute(t, env.environment, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "package_name")
	assert.Contains(t, output, "--dry-run")
}

func TestRootCommand_ToolMissing(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "", "")

	_, err := execute(t, env.environment, "demo")
	require.Error(t, err)
	assert.True(t, launcher.IsNotFoundError(err))
}

func TestRootCommand_CreatesPackage(t *testing.T) {
	fake := testutil.NewFakeTool(t, 0)
	env := newTestEnvironment(t, fake.Path, "")
	env.writeConfig(t)

	output, err := execute(t, env.environment, "demo")
	require.NoError(t, err)
	assert.Contains(t, output, "Initialized project demo")
	assert.Contains(t, output, "Created package 'demo'")

	_, args := fake.Invocation(t)
	assert.Equal(t, "init --package demo", args)

	historyOutput, err := execute(t, env.environment, "history")
	require.NoError(t, err)
	assert.Contains(t, historyOutput, "demo")
	assert.Contains(t, historyOutput, env.root)
}

func TestRootCommand_FirstRunPrompts(t *testing.T) {
	fake := testutil.NewFakeTool(t, 0)
	env := newTestEnvironment(t, fake.Path, "")
	env.newPrompter = func() prompt.Prompter { return &scriptedPrompter{answer: env.root} }

	output, err := execute(t, env.environment, "demo")
	require.NoError(t, err)
	assert.Contains(t, output, "Config file not found. Creating new config.")

	path, err := env.storage.GetConfigPath()
	require.NoError(t, err)
	cfg, err := config.Read(env.fs, path)
	require.NoError(t, err)
	assert.Equal(t, env.root, cfg.ProgrammingDir)
}

func TestRootCommand_PackageExists(t *testing.T) {
	fake := testutil.NewFakeTool(t, 0)
	env := newTestEnvironment(t, fake.Path, "")
	env.writeConfig(t)
	require.NoError(t, os.Mkdir(filepath.Join(env.root, "demo"), 0o750))

	_, err := execute(t, env.environment, "demo")

	var existsErr *scaffold.PackageExistsError
	require.ErrorAs(t, err, &existsErr)
	assert.False(t, fake.Called())
}

func TestRootCommand_ToolFailure(t *testing.T) {
	fake := testutil.NewFakeTool(t, 4)
	env := newTestEnvironment(t, fake.Path, "")
	env.writeConfig(t)

	_, err := execute(t, env.environment, "demo")

	var exitErr *launcher.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.Code)
}

func TestRootCommand_DryRun(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "/usr/bin/uv", "")
	env.writeConfig(t)

	output, err := execute(t, env.environment, "--dry-run", "demo")
	require.NoError(t, err)
	assert.Equal(t, "Would run: /usr/bin/uv init --package demo (in "+env.root+")\n", output)
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "", "")
	env.writeConfig(t)

	output, err := execute(t, env.environment, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.home, "Library", "Application Support", "uvpkg", "config.json")+"\n", output)

	output, err = execute(t, env.environment, "config", "set", "/srv/elsewhere")
	require.NoError(t, err)
	assert.Contains(t, output, "/srv/elsewhere")

	output, err = execute(t, env.environment, "config", "show")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"programming_dir\": \"/srv/elsewhere\"\n}\n", output)

	output, err = execute(t, env.environment, "config", "show", "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "programming_dir: /srv/elsewhere\n", output)

	_, err = execute(t, env.environment, "config", "show", "-o", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestHistoryCommand_Empty(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "", "")

	output, err := execute(t, env.environment, "history")
	require.NoError(t, err)
	assert.Equal(t, "No packages created yet\n", output)
}

func TestRenderHistory_Table(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	renderHistory(&buf, []history.Entry{
		{ID: 2, PackageName: "beta", ProgrammingDir: "/srv/code", CreatedAt: time.Now()},
		{ID: 1, PackageName: "alpha", ProgrammingDir: "/srv/code", CreatedAt: time.Now()},
	})

	output := buf.String()
	assert.Contains(t, output, "PACKAGE")
	assert.Less(t, strings.Index(output, "beta"), strings.Index(output, "alpha"))
}

func TestCommandsHaveRunE(t *testing.T) {
	t.Parallel()

	env := defaultEnvironment()
	for _, cmd := range []*cobra.Command{createConfigCommand(env), createHistoryCommand(env)} {
		assert.NotNil(t, cmd.RunE, cmd.Name())
		assert.NotEmpty(t, cmd.Short, cmd.Name())
	}
}
