package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/timesheet/internal/auth"
	ctxlog "github.com/ErlanBelekov/timesheet/internal/log"
	"github.com/ErlanBelekov/timesheet/internal/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(buf, nil)))
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestContextHandler_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf)

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	ctx = auth.WithIdentity(ctx, &auth.Identity{UserID: "user-1"})
	logger.InfoContext(ctx, "hello")

	rec := decode(t, &buf)
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "user-1", rec["user_id"])
}

func TestContextHandler_AnonymousRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedLogger(&buf).With("component", "test")

	logger.InfoContext(requestid.WithRequestID(context.Background(), "req-2"), "hello")

	rec := decode(t, &buf)
	assert.Equal(t, "req-2", rec["request_id"])
	assert.Equal(t, "test", rec["component"])
	assert.NotContains(t, rec, "user_id")
}

func TestNew_JSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New(&buf, "production", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_TextLocally(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New(&buf, "local", slog.LevelDebug)

	logger.Debug("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.False(t, json.Valid(buf.Bytes()))
}
