package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.True(t, cfg.InsecureSecret())
}

func TestFromLookup(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DB_PATH":    "/tmp/lib.db",
		"ADDR":       ":9090",
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "2h",
		"LOG_LEVEL":  "debug",
		"PAGE_SIZE":  "25",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lib.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 25, cfg.PageSize)
	assert.False(t, cfg.InsecureSecret())
}

func TestFromLookupErrors(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"TOKEN_TTL": "forever",
		"PAGE_SIZE": "-1",
		"LOG_LEVEL": "loud",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
	assert.Contains(t, err.Error(), "PAGE_SIZE")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
