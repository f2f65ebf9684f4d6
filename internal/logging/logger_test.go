package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/uvpkg/internal/constants"
	"github.com/wizzomafizzo/uvpkg/internal/storage"
)

func TestGet_WithoutLogger(t *testing.T) {
	t.Parallel()

	logger := Get(context.Background())

	require.NotNil(t, logger)
	// When no logger is attached, zerolog.Ctx returns a disabled logger
	require.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestNew_WithCustomWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	ctx, err := New(context.Background(), nil, Config{Writer: &buf, Level: InfoLevel})
	require.NoError(t, err)

	logger := Get(ctx)
	assert.Equal(t, InfoLevel, logger.GetLevel())

	logger.Info().Str("package", "demo").Msg("scaffolding")
	logger.Debug().Msg("hidden")

	output := buf.String()
	assert.Contains(t, output, `"package":"demo"`)
	assert.Contains(t, output, `"pid":`)
	assert.NotContains(t, output, "hidden")
}

func TestNew_NoWriterNoStorage_ReturnsError(t *testing.T) {
	t.Parallel()

	ctx, err := New(context.Background(), nil, Config{Level: InfoLevel})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage manager required when no writer provided")
	assert.Nil(t, ctx)
}

func TestNew_FileWriter(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	store := storage.NewWithHome(afero.NewOsFs(), home)

	ctx, err := New(context.Background(), store, Config{Level: DebugLevel})
	require.NoError(t, err)

	Get(ctx).Debug().Msg("written to file")

	logPath := filepath.Join(home, "Library", "Application Support", constants.AppName, constants.LogFilename)
	data, err := os.ReadFile(logPath) //nolint:gosec // test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
