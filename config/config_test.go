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

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "drop", cfg.SlotRemainderPolicy)
	assert.Equal(t, 5*time.Minute, cfg.ConfigCacheTTL)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SLOT_REMAINDER_POLICY", "extend")
	t.Setenv("CONFIG_CACHE_TTL", "30s")
	t.Setenv("BOOKING_TIMEZONE", "Africa/Nairobi")
	t.Setenv("MAX_REQUESTS_PER_MIN", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "extend", cfg.SlotRemainderPolicy)
	assert.Equal(t, 30*time.Second, cfg.ConfigCacheTTL)
	assert.Equal(t, 20, cfg.MaxRequestsPerMin)
	assert.Equal(t, "Africa/Nairobi", cfg.Location().String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":  {"STORE_DRIVER": "cassandra"},
		"unknown policy":  {"SLOT_REMAINDER_POLICY": "spread"},
		"bad timezone":    {"BOOKING_TIMEZONE": "Mars/Olympus"},
		"postgres no dsn": {"STORE_DRIVER": "postgres"},
		"zero rate limit": {"MAX_REQUESTS_PER_MIN": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
