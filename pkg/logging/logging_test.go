package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := New(Options{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 5})
	require.NoError(t, err)

	Source(logger.Logger, "routes").Info("article saved", "id", 3)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "source=routes")
	assert.Contains(t, string(data), "article saved")
}

func TestNewWithoutFile(t *testing.T) {
	logger, err := New(Options{JSON: true})
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
}
