package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/wizzomafizzo/uvpkg/internal/launcher"
)

func main() {
	if err := run(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)

		// Mirror uv's own status so scripts can tell its failures apart
		var exitErr *launcher.ExitError
		if errors.As(err, &exitErr) && exitErr.Code > 0 {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return createNewRootCommand(defaultEnvironment()).ExecuteContext(ctx) //nolint:wrapcheck // printed by main
}
