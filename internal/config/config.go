package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Ledger LedgerConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// LedgerConfig は予約台帳の設定
type LedgerConfig struct {
	MinCapacity           int
	MaxCapacity           int
	CapacitySeed          uint64
	ReportCacheTTL        time.Duration
	ReportRefreshInterval time.Duration
}

// LoadDotEnv は .env ファイルを環境変数に読み込む。ファイルがなければ何もしない
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Ledger: LedgerConfig{
			MinCapacity:           getIntEnv("LEDGER_MIN_CAPACITY", 10),
			MaxCapacity:           getIntEnv("LEDGER_MAX_CAPACITY", 100),
			CapacitySeed:          getUint64Env("LEDGER_CAPACITY_SEED", uint64(time.Now().UnixNano())),
			ReportCacheTTL:        getDurationEnv("LEDGER_REPORT_CACHE_TTL", 5*time.Minute),
			ReportRefreshInterval: getDurationEnv("LEDGER_REPORT_REFRESH_INTERVAL", time.Minute),
		},
	}

	// REDIS_URL が設定されていれば優先する
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			cfg.Redis.Enabled = true
			cfg.Redis.Host = u.Hostname()
			if port := u.Port(); port != "" {
				cfg.Redis.Port = port
			}
			if pw, ok := u.User.Password(); ok {
				cfg.Redis.Password = pw
			}
		}
	}

	return cfg
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getUint64Env(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseUint(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
