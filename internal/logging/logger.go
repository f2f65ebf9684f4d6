package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/wizzomafizzo/uvpkg/internal/storage"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// Log levels - aliases for zerolog levels
const (
	ErrorLevel = zerolog.ErrorLevel
	WarnLevel  = zerolog.WarnLevel
	InfoLevel  = zerolog.InfoLevel
	DebugLevel = zerolog.DebugLevel
)

// Config defines the configuration for logger creation
type Config struct {
	Writer io.Writer
	Level  zerolog.Level
}

// New creates a new context with a logger attached
// For production: provide a storage manager and leave Writer nil for file logging
// For tests: provide a custom Writer (like strings.Builder) for in-memory logging
func New(ctx context.Context, store *storage.Manager, config Config) (context.Context, error) {
	var writer io.Writer

	if config.Writer != nil {
		writer = config.Writer
	} else {
		if store == nil {
			return nil, errors.New("storage manager required when no writer provided")
		}

		logFile, err := store.GetLogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get log path: %w", err)
		}

		writer = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger().
		Level(config.Level)

	return logger.WithContext(ctx), nil
}

// Get retrieves the logger from the provided context
// Returns the logger associated with the context, or a disabled logger if none exists
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
