package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "API_BASE_URL", "SESSION_SECRET", "STORAGE_DRIVER", "DATA_DIR",
		"REDIS_HOST", "REDIS_PASSWORD", "CORS_ORIGINS", "DEBUG", "SECURE_COOKIES",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestRead_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.Debug)
}

func TestRead_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "https://api.markethub.test/")
	t.Setenv("STORAGE_DRIVER", "REDIS")
	t.Setenv("REDIS_HOST", "localhost:6379")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test ,")
	t.Setenv("DEBUG", "true")

	cfg, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://api.markethub.test", cfg.APIBaseURL)
	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.Debug)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "bad port", env: map[string]string{"SESSION_SECRET": "x", "PORT": "abc"}},
		{name: "unknown driver", env: map[string]string{"SESSION_SECRET": "x", "STORAGE_DRIVER": "mongo"}},
		{name: "redis without host", env: map[string]string{"SESSION_SECRET": "x", "STORAGE_DRIVER": "redis"}},
		{name: "bad debug flag", env: map[string]string{"SESSION_SECRET": "x", "DEBUG": "maybe"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Read()
			assert.Error(t, err)
		})
	}
}

func TestRead_CORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins, "unset uses the dev default")

	t.Setenv("CORS_ORIGINS", "")
	cfg, err = Read()
	require.NoError(t, err)
	assert.Empty(t, cfg.CORSOrigins, "explicitly empty allows every origin")
}
