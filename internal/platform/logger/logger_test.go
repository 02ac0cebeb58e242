package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core), true)

	l.Info("user synced", "email", "a@b.com", "user_id", "u-1", "project_id", "swot-1")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["email"])
	assert.Contains(t, fields["user_id"], "hash:")
	assert.Equal(t, "swot-1", fields["project_id"])
}

func TestRedactionDisabled(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core), false).With("component", "test")

	l.Warn("w", "api_key", "k")
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "k", fields["api_key"])
	assert.Equal(t, "test", fields["component"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	l, err := New(Options{Mode: "production", Level: "warn"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}
