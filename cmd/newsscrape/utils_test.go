package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevel verifies level names map to slog levels
func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}

// TestNewLogger_File verifies log lines reach the log file
func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, closeLog, err := newLogger("debug", path)
	require.NoError(t, err)

	logger.Debug("hello from the test", "key", "value")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Contains(t, string(data), "key=value")
}

// TestGetEnv verifies defaults for unset variables
func TestGetEnv(t *testing.T) {
	t.Setenv("NEWSSCRAPE_TEST_VALUE", "set")

	assert.Equal(t, "set", getEnv("NEWSSCRAPE_TEST_VALUE", "default"))
	assert.Equal(t, "default", getEnv("NEWSSCRAPE_TEST_UNSET", "default"))
}
