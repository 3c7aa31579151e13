package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestLogger_RedactsSecretKeys(t *testing.T) {
	log, logs := observed()

	log.Info("calling endpoint", "api_key", "AIza-secret", "key", "AIza-secret", "model", "gemini")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "[REDACTED]", fields["key"])
	assert.Equal(t, "gemini", fields["model"])
}

func TestLogger_HashesSessionIDsWhenEnabled(t *testing.T) {
	log, logs := observed()
	log.hashIDs = true

	log.With("session_id", "abc-123").Warn("step locked")

	fields := logs.All()[0].ContextMap()
	assert.Contains(t, fields["session_id"], "hash:")
	assert.NotContains(t, fields["session_id"], "abc-123")
}

func TestLogger_OddKeyValuesKeepTrailingValue(t *testing.T) {
	log, logs := observed()
	log.Debug("odd", "file", "a.png", "dangling")
	assert.Equal(t, 1, logs.FilterMessage("odd").Len())
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("production", Options{Level: "chatty"})
	assert.Error(t, err)

	l, err := New("development", Options{Level: "debug"})
	require.NoError(t, err)
	l.Sync()
}
