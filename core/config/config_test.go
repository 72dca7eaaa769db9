package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.SyncRequestsPerHour)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 4.0, cfg.Catalog.RequestsPerSecond)
	assert.Equal(t, 10, cfg.Catalog.BatchSize)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, []string{"xbox"}, cfg.Quota.Platforms)
	assert.Equal(t, 100, cfg.Quota.MaxRequests)
	assert.Equal(t, time.Hour, cfg.Quota.Window)
	assert.Equal(t, 0.75, cfg.Match.FuzzyThreshold)
	assert.Empty(t, cfg.Match.PlatformTokens)
	assert.Equal(t, 10, cfg.Sync.ProgressEvery)
	assert.Equal(t, 30*time.Minute, cfg.Sync.LockTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_PORT=9090\nDATABASE_DRIVER=sqlite\nMATCH_FUZZY_THRESHOLD=0.8\nKAFKA_BROKERS=a:9092,b:9092\nQUOTA_WINDOW=30m\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"SERVER_PORT", "DATABASE_DRIVER", "MATCH_FUZZY_THRESHOLD", "KAFKA_BROKERS", "QUOTA_WINDOW"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 0.8, cfg.Match.FuzzyThreshold)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Minute, cfg.Quota.Window)
}
