package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/cinema-booking-ledger/internal/config"
)

// レポートキャッシュは任意のため、応答が遅いときは待たずに台帳から再計算する
const (
	clientName   = "cinema-booking-ledger"
	dialTimeout  = 2 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
)

// NewClient はレポートキャッシュ用のRedisクライアントを作成する
func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		ClientName:   clientName,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		MaxRetries:   1,
	})
}

// Ping はRedis接続を確認する
func Ping(ctx context.Context, client redis.Cmdable) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis接続に失敗しました (%s): %w", addrOf(client), err)
	}
	return nil
}

func addrOf(client redis.Cmdable) string {
	if c, ok := client.(*redis.Client); ok {
		return c.Options().Addr
	}
	return "unknown"
}
