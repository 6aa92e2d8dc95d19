package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restore puts the logger back on stderr at the default level after a test.
func restore(t *testing.T) {
	t.Cleanup(func() {
		SetOutput(os.Stderr, "json")
		require.NoError(t, SetLevel("warn"))
	})
}

func TestLogger(t *testing.T) {
	// Logger helpers must not panic at any level
	ctx := context.Background()
	Initialize()

	t.Run("Info", func(t *testing.T) {
		Info("Test info message", "component", "test")
		InfoContext(ctx, "Test info message", "key", "value", "number", 42)
	})

	t.Run("Warn", func(t *testing.T) {
		Warn("Test warning message", "component", "test")
		WarnContext(ctx, "Test warning message", "component", "test")
	})

	t.Run("Error", func(t *testing.T) {
		Error("Test error message", "error", "sample error")
		ErrorContext(ctx, "Test error message", "error", "sample error")
	})

	t.Run("Debug", func(t *testing.T) {
		Debug("Test debug message", "debug", true)
		DebugContext(ctx, "Test debug message", "debug", true)
	})
}

func TestLoggerInitialization(t *testing.T) {
	logger := Get()
	require.NotNil(t, logger)
	assert.Same(t, logger, Get())
	assert.NotNil(t, With("service", "test"))
}

func TestSetLevel(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	SetOutput(&buf, "json")

	require.NoError(t, SetLevel("error"))
	assert.Equal(t, slog.LevelError, Level())
	Warn("suppressed")
	assert.Empty(t, buf.String())

	require.NoError(t, SetLevel("DEBUG"))
	Debug("visible", "pattern_len", 4)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.EqualValues(t, 4, entry["pattern_len"])

	assert.Error(t, SetLevel("chatty"))
}

func TestSetOutput_Text(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	SetOutput(&buf, "text")
	require.NoError(t, SetLevel("info"))

	Info("hello", "matches", 3)
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "matches=3")
}
