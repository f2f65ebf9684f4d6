package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeTool is a shell script standing in for uv during tests
type FakeTool struct {
	Path    string
	logPath string
}

// NewFakeTool writes an executable script to a temp directory. The script records
// its working directory and arguments, prints a line to stdout, and exits with exitCode.
// Tests using it must not call t.Parallel: a concurrent fork can inherit the script's
// write descriptor and exec then fails with ETXTBSY.
func NewFakeTool(t *testing.T, exitCode int) *FakeTool {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts require a POSIX shell")
	}

	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	path := filepath.Join(dir, "uv")

	script := fmt.Sprintf("#!/bin/sh\npwd -P > '%s'\necho \"$@\" >> '%s'\necho \"Initialized project $3\"\nexit %d\n",
		logPath, logPath, exitCode)
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil { //nolint:gosec // test script
		t.Fatalf("Failed to write fake tool: %v", err)
	}

	return &FakeTool{Path: path, logPath: logPath}
}

// Called reports whether the script has run
func (f *FakeTool) Called() bool {
	_, err := os.Stat(f.logPath)
	return err == nil
}

// Invocation returns the working directory and arguments of the last run
func (f *FakeTool) Invocation(t *testing.T) (dir, args string) {
	t.Helper()

	data, err := os.ReadFile(f.logPath)
	if err != nil {
		t.Fatalf("Fake tool was not called: %v", err)
	}

	lines := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)
	if len(lines) != 2 {
		t.Fatalf("Unexpected fake tool log: %q", data)
	}
	return lines[0], lines[1]
}

// StaticLocator resolves every lookup to Path, or fails when Path is empty
type StaticLocator struct {
	Path string
}

// LookPath implements launcher.Locator
func (s StaticLocator) LookPath(file string) (string, error) {
	if s.Path == "" {
		return "", fmt.Errorf("%s: executable file not found in $PATH", file)
	}
	return s.Path, nil
}
