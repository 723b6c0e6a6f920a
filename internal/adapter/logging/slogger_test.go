package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestSLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(NewSlog(&buf, "debug", "json"))

	logger.Warn(context.Background(), "image attachment failed", "reason", "timeout")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "image attachment failed", entry["msg"])
	assert.Equal(t, "timeout", entry["reason"])
}

func TestSLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(NewSlog(&buf, "error", "text"))

	logger.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	logger.Error(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNilSLoggerIsSilent(t *testing.T) {
	logger := New(nil)
	assert.NotPanics(t, func() {
		logger.Debug(context.Background(), "noop")
	})
}
