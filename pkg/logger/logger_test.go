package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecordsMessages(t *testing.T) {
	mock := NewMockLogger()

	mock.Debug("debug msg", "k", "v")
	mock.Info("info msg")
	mock.Warn("warn msg")
	mock.Error("error msg", "error", assert.AnError)

	require.Len(t, *mock.Messages, 4)
	assert.True(t, mock.HasMessage("DEBUG", "debug msg"))
	assert.True(t, mock.HasMessage("INFO", "info msg"))
	assert.True(t, mock.HasMessage("WARN", "warn msg"))
	assert.True(t, mock.HasMessage("ERROR", "error msg"))
	assert.False(t, mock.HasMessage("INFO", "never logged"))
}

func TestMockLoggerWithSharesSink(t *testing.T) {
	mock := NewMockLogger()

	child := mock.With("run_id", "abc123")
	child.Info("from child")

	require.Len(t, *mock.Messages, 1)
	msg := (*mock.Messages)[0]
	assert.Equal(t, "from child", msg.Msg)
	assert.Equal(t, []any{"run_id", "abc123"}, msg.Args)
}

func TestNewLoggerFormats(t *testing.T) {
	// Constructors must not panic for either handler type.
	assert.NotNil(t, New(false, "text"))
	assert.NotNil(t, New(true, "json"))
	assert.NotNil(t, New(false, "unknown-falls-back-to-text"))
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	mock := NewMockLogger()
	SetGlobalLogger(mock)
	GetGlobalLogger().Info("through the global")

	assert.True(t, mock.HasMessage("INFO", "through the global"))
}
