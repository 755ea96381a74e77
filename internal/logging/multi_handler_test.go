package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level   slog.Level
	err     error
	handled []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.handled = append(h.handled, record)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerRespectsChildLevels(t *testing.T) {
	stdout := &recordingHandler{level: slog.LevelInfo}
	sink := &recordingHandler{level: slog.LevelWarn}
	m := NewMultiHandler(stdout, sink)

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "request served", 0)
	require.NoError(t, m.Handle(context.Background(), record))
	assert.Len(t, stdout.handled, 1)
	assert.Empty(t, sink.handled)
}

func TestMultiHandlerFailingSinkDoesNotSilenceOthers(t *testing.T) {
	broken := &recordingHandler{level: slog.LevelInfo, err: errors.New("connection reset")}
	stdout := &recordingHandler{level: slog.LevelInfo}
	m := NewMultiHandler(broken, stdout)

	record := slog.NewRecord(time.Now(), slog.LevelError, "db write failed", 0)
	err := m.Handle(context.Background(), record)
	assert.EqualError(t, err, "connection reset")
	assert.Len(t, stdout.handled, 1)
}
