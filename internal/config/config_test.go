package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	"PORT", "APP_ENV", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"REDIS_ENABLED", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
	"LEDGER_MIN_CAPACITY", "LEDGER_MAX_CAPACITY", "LEDGER_CAPACITY_SEED",
	"LEDGER_REPORT_CACHE_TTL", "LEDGER_REPORT_REFRESH_INTERVAL",
}

func TestLoad_DefaultValues(t *testing.T) {
	// 環境変数をクリア
	for _, env := range allEnvVars {
		t.Setenv(env, "")
	}

	cfg := Load()

	// Server defaults
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	// Redis defaults
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)

	// Ledger defaults
	assert.Equal(t, 10, cfg.Ledger.MinCapacity)
	assert.Equal(t, 100, cfg.Ledger.MaxCapacity)
	assert.Equal(t, 5*time.Minute, cfg.Ledger.ReportCacheTTL)
	assert.Equal(t, time.Minute, cfg.Ledger.ReportRefreshInterval)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_READ_TIMEOUT", "60s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "120s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "redis.example.com")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "redispass")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("LEDGER_MIN_CAPACITY", "20")
	t.Setenv("LEDGER_MAX_CAPACITY", "80")
	t.Setenv("LEDGER_CAPACITY_SEED", "42")
	t.Setenv("LEDGER_REPORT_CACHE_TTL", "30s")
	t.Setenv("LEDGER_REPORT_REFRESH_INTERVAL", "10s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.example.com", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, "redispass", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 20, cfg.Ledger.MinCapacity)
	assert.Equal(t, 80, cfg.Ledger.MaxCapacity)
	assert.Equal(t, uint64(42), cfg.Ledger.CapacitySeed)
	assert.Equal(t, 30*time.Second, cfg.Ledger.ReportCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.Ledger.ReportRefreshInterval)
}

func TestLoad_RedisURL(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("REDIS_URL", "redis://:redispassword@redis.railway.app:6380")

	cfg := Load()

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis.railway.app", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, "redispassword", cfg.Redis.Password)
}

func TestLoad_InvalidRedisURL(t *testing.T) {
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_URL", "://invalid-url")

	cfg := Load()
	require.NotNil(t, cfg)
	// パースに失敗した場合はデフォルト値が使用される
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := &RedisConfig{
		Host: "localhost",
		Port: "6379",
	}

	assert.Equal(t, "localhost:6379", cfg.Addr())
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("ファイルの値を環境変数に読み込む", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("LEDGER_TEST_DOTENV=from-file\n"), 0o600))
		t.Setenv("LEDGER_TEST_DOTENV", "")
		os.Unsetenv("LEDGER_TEST_DOTENV")

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "from-file", os.Getenv("LEDGER_TEST_DOTENV"))
	})

	t.Run("ファイルがなければエラーにしない", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "custom_value")

	assert.Equal(t, "custom_value", getEnv("TEST_ENV_VAR", "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT_VAR", "default"))
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INVALID_INT", "not_a_number")

	assert.Equal(t, 42, getIntEnv("TEST_INT", 0))
	assert.Equal(t, 99, getIntEnv("TEST_INVALID_INT", 99))
	assert.Equal(t, 100, getIntEnv("NON_EXISTENT_INT", 100))
}

func TestGetBoolEnv(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_INVALID_BOOL", "maybe")

	assert.True(t, getBoolEnv("TEST_BOOL", false))
	assert.True(t, getBoolEnv("TEST_INVALID_BOOL", true))
	assert.False(t, getBoolEnv("NON_EXISTENT_BOOL", false))
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION", "5m")
	t.Setenv("TEST_INVALID_DURATION", "invalid")

	assert.Equal(t, 5*time.Minute, getDurationEnv("TEST_DURATION", time.Second))
	assert.Equal(t, 30*time.Second, getDurationEnv("TEST_INVALID_DURATION", 30*time.Second))
	assert.Equal(t, time.Minute, getDurationEnv("NON_EXISTENT_DURATION", time.Minute))
}
