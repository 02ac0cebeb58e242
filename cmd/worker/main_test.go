package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func devEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DB_DSN", "REDIS_ADDR", "FIREBASE_CREDENTIALS_PATH", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("APP_ENV", "development")
}

func TestRunPurge_InMemory(t *testing.T) {
	devEnv(t)
	assert.Equal(t, 0, runPurge([]string{"-passes", "2"}))
}

func TestRunPurge_ConfigErrorReturnsCode(t *testing.T) {
	devEnv(t)
	t.Setenv("RETENTION_DAYS", "-1")
	assert.Equal(t, 1, runPurge(nil))
}
