package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found.
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "adintel.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "https://api.scrapecreators.com", cfg.ScrapeCreators.BaseURL)
	assert.Equal(t, "https://public.api.foreplay.co", cfg.Foreplay.BaseURL)
	assert.Equal(t, "US", cfg.Aggregate.Country)
	assert.Equal(t, 50, cfg.Aggregate.Limit)
	assert.Equal(t, 30, cfg.Aggregate.SourceTimeoutSecs)
	assert.Equal(t, 100, cfg.Aggregate.MinIntervalMS)
	assert.Equal(t, 25, cfg.Aggregate.EnrichCap)
	assert.Equal(t, 90, cfg.Aggregate.WindowDays)
	assert.False(t, cfg.Aggregate.IngestSecondary)
	assert.InDelta(t, 0.01, cfg.Aggregate.CreditUSD, 0.0001)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	chtemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/adintel
aggregate:
  limit: 10
  ingest_secondary: true
log:
  level: debug
  format: console
server:
  port: 9090
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/adintel", cfg.Store.DatabaseURL)
	assert.Equal(t, 10, cfg.Aggregate.Limit)
	assert.True(t, cfg.Aggregate.IngestSecondary)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values.
	assert.Equal(t, 90, cfg.Aggregate.WindowDays)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chtemp(t)

	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("ADINTEL_SERVER_PORT", "7070")
	t.Setenv("ADINTEL_SCRAPECREATORS_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.ScrapeCreators.Key)
}

func TestLoadMalformedYAML(t *testing.T) {
	chtemp(t)

	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":[bad yaml"), 0644))

	_, err := Load()
	require.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}
