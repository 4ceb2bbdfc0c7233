package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, SourceJSON, cfg.Fixtures.Source)
	assert.Equal(t, "./data/synthetic", cfg.Fixtures.Dir)
	assert.Equal(t, "./data/healthmap.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)
	assert.InDelta(t, 20, cfg.RateLimit.RPS, 0.001)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.InDelta(t, 24.4869, cfg.Map.CenterLat, 1e-9)
	assert.InDelta(t, 54.3702, cfg.Map.CenterLng, 1e-9)
	assert.Equal(t, 11, cfg.Map.Zoom)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
fixtures:
  source: sqlite
log:
  level: debug
  format: console
session:
  ttl_minutes: 15
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceSQLite, cfg.Fixtures.Source)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 15, cfg.Session.TTLMinutes)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: debug\n"), 0o644))

	t.Setenv("HEALTHMAP_LOG_LEVEL", "warn")
	t.Setenv("HEALTHMAP_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [\n"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: 8080},
		Fixtures:  FixturesConfig{Source: SourceJSON, Dir: "./data"},
		Database:  DatabaseConfig{Path: "./healthmap.db"},
		Session:   SessionConfig{Secret: "s", TTLMinutes: 60},
		RateLimit: RateLimitConfig{RPS: 1, Burst: 1},
	}
}

func TestValidateServe(t *testing.T) {
	assert.NoError(t, validConfig().Validate("serve"))

	cfg := validConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate("serve"))

	cfg = validConfig()
	cfg.Session.TTLMinutes = 0
	assert.Error(t, cfg.Validate("serve"))

	cfg = validConfig()
	cfg.RateLimit.Burst = 0
	assert.Error(t, cfg.Validate("serve"))

	cfg = validConfig()
	cfg.Fixtures.Source = "csv"
	assert.Error(t, cfg.Validate("serve"))
}

func TestValidateImport(t *testing.T) {
	assert.NoError(t, validConfig().Validate("import"))

	cfg := validConfig()
	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate("import"))
}

func TestValidateSnapshotSQLite(t *testing.T) {
	cfg := validConfig()
	cfg.Fixtures.Source = SourceSQLite
	assert.NoError(t, cfg.Validate("snapshot"))

	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate("snapshot"))
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
