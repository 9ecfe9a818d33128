package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  base_url: "https://api.example.com"
  request_timeout: 5

auth:
  token_file: "/tmp/token"

storage:
  driver: redis
  redis_addr: "redis:6380"
  redis_password: "secret"
  redis_db: 2
  session_key: "box"

economy:
  max_win_percentage: 0.2
  min_bet_amount: 5
  max_bet_amount: 500
  house_edge: 0.1
  session_win_cap: 2000
  bet_cap_multiplier: 1.5
  autosave_interval: 10

log:
  dir: "/var/log/box"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 5, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/token", cfg.Auth.TokenFile)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "redis:6380", cfg.Storage.RedisAddr)
	assert.Equal(t, "secret", cfg.Storage.RedisPassword)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
	assert.Equal(t, "box", cfg.Storage.SessionKey)
	assert.InDelta(t, 0.2, cfg.Economy.MaxWinPercentage, 1e-9)
	assert.InDelta(t, 5, cfg.Economy.MinBetAmount, 1e-9)
	assert.InDelta(t, 500, cfg.Economy.MaxBetAmount, 1e-9)
	assert.InDelta(t, 0.1, cfg.Economy.HouseEdge, 1e-9)
	assert.InDelta(t, 2000, cfg.Economy.SessionWinCap, 1e-9)
	assert.InDelta(t, 1.5, cfg.Economy.BetCapMultiplier, 1e-9)
	assert.Equal(t, 10, cfg.Economy.AutosaveInterval)
	assert.Equal(t, "/var/log/box", cfg.Log.Dir)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, defaultBaseURL, cfg.Server.BaseURL)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Storage.SQLitePath)
	assert.Equal(t, defaultSessionKey, cfg.Storage.SessionKey)
	assert.InDelta(t, 0.10, cfg.Economy.MaxWinPercentage, 1e-9)
	assert.InDelta(t, 10, cfg.Economy.MinBetAmount, 1e-9)
	assert.InDelta(t, 1000, cfg.Economy.MaxBetAmount, 1e-9)
	assert.InDelta(t, 0.05, cfg.Economy.HouseEdge, 1e-9)
	assert.InDelta(t, 10000, cfg.Economy.SessionWinCap, 1e-9)
	assert.InDelta(t, 1.10, cfg.Economy.BetCapMultiplier, 1e-9)
	assert.Equal(t, 30, cfg.Economy.AutosaveInterval)
	assert.Equal(t, defaultDevListenAddr, cfg.DevServer.ListenAddr)
	assert.Equal(t, 20, cfg.DevServer.RatePerSecond)
	assert.Equal(t, 600, cfg.DevServer.RatePerMinute)
	assert.Equal(t, 10*time.Second, cfg.DevServer.RateBanDuration())
}

func TestLoad_ExplicitZeroKept(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "economy:\n  house_edge: 0\n  min_bet_amount: 0\n"))
	require.NoError(t, err)

	assert.Zero(t, cfg.Economy.HouseEdge)
	assert.Zero(t, cfg.Economy.MinBetAmount)
	assert.InDelta(t, 1000, cfg.Economy.MaxBetAmount, 1e-9, "absent keys keep defaults")
	assert.InDelta(t, 0.10, cfg.Economy.MaxWinPercentage, 1e-9)
}

func TestLoadFromEnv_ZeroHouseEdge(t *testing.T) {
	// Not parallel because it modifies environment variables
	t.Setenv("ECONOMY_HOUSE_EDGE", "0")

	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Economy.HouseEdge)
}

func TestDefault(t *testing.T) {
	// Not parallel: Default reads the environment.
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, defaultBaseURL, cfg.Server.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Economy.AutosaveIntervalDuration())
	assert.False(t, cfg.UI.Sound)
	assert.Equal(t, defaultSoundDir, cfg.UI.SoundDir)
}

func TestDurationMethods(t *testing.T) {
	t.Parallel()

	s := &ServerConfig{RequestTimeout: 7}
	e := &EconomyConfig{AutosaveInterval: 45}

	assert.Equal(t, 7*time.Second, s.RequestTimeoutDuration())
	assert.Equal(t, 45*time.Second, e.AutosaveIntervalDuration())
}

func TestLoadFromEnv(t *testing.T) {
	// Not parallel because it modifies environment variables
	t.Setenv("SERVER_BASE_URL", "http://env-host:9000")
	t.Setenv("AUTH_TOKEN", "env-token")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ECONOMY_MAX_BET_AMOUNT", "250")

	cfg, err := Load(writeConfig(t, "server:\n  base_url: http://file-host\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://env-host:9000", cfg.Server.BaseURL)
	assert.Equal(t, "env-token", cfg.Auth.Token)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.InDelta(t, 250, cfg.Economy.MaxBetAmount, 1e-9)
}

func TestLoadDotEnv(t *testing.T) {
	// Not parallel: godotenv writes to the process environment.
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("INFINITY_BOX_TEST_TOKEN=dotenv-token\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("INFINITY_BOX_TEST_TOKEN") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "dotenv-token", os.Getenv("INFINITY_BOX_TEST_TOKEN"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
