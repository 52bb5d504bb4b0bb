package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "daily_detailed_subindices.csv", cfg.SubindexPath)
	assert.Equal(t, "daily_mainindices.csv", cfg.MainIndexPath)
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 1024, cfg.SessionCapacity)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FOODINDEX_ADDR", "127.0.0.1:9000")
	t.Setenv("FOODINDEX_DELIMITER", ";")
	t.Setenv("FOODINDEX_SESSION_TTL", "30m")
	t.Setenv("FOODINDEX_RATE_LIMIT", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Zero(t, cfg.RateLimit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"FOODINDEX_DELIMITER":        ";;",
		"FOODINDEX_SESSION_CAPACITY": "0",
		"FOODINDEX_LOG_FORMAT":       "xml",
		"FOODINDEX_SESSION_TTL":      "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
