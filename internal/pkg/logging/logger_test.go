package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"footprint/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestContextHandler_StampsIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo).With("component", "test")

	ctx := logging.WithActorID(logging.WithRequestID(context.Background(), "req-1"), "admin-1")
	logger.InfoContext(ctx, "hello")

	record := decode(t, &buf)
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "admin-1", record["actor_id"])
	assert.Equal(t, "test", record["component"])
}

func TestContextHandler_WithoutIDs(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, slog.LevelInfo).WithGroup("g").InfoContext(context.Background(), "hello", "k", "v")

	record := decode(t, &buf)
	assert.NotContains(t, record, "request_id")
	assert.Equal(t, map[string]any{"k": "v"}, record["g"])
}

func TestContextHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logging.New(&buf, slog.LevelWarn).Info("dropped")

	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("loud"))
}
