package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/ledger"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// ReportCache は月間売上レポートのキャッシュを管理する
// キーは年月単位で、その月の上映に対する予約が変わったら無効化する
type ReportCache struct {
	client *redis.Client
}

// NewReportCache は新しいReportCacheインスタンスを作成する
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// GetMonthlyReport は指定年月のレポートをキャッシュから取得する
func (c *ReportCache) GetMonthlyReport(ctx context.Context, year, month int) ([]ledger.RoomStatistics, error) {
	val, err := c.client.Get(ctx, monthlyReportKey(year, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	report := make([]ledger.RoomStatistics, 0)
	if err := json.Unmarshal(val, &report); err != nil {
		return nil, fmt.Errorf("キャッシュの復元に失敗: %w", err)
	}
	return report, nil
}

// SetMonthlyReport は指定年月のレポートをキャッシュに保存する
func (c *ReportCache) SetMonthlyReport(ctx context.Context, year, month int, report []ledger.RoomStatistics, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("キャッシュのシリアライズに失敗: %w", err)
	}
	if err := c.client.Set(ctx, monthlyReportKey(year, month), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// InvalidateMonthlyReport は指定年月のレポートキャッシュを無効化する
func (c *ReportCache) InvalidateMonthlyReport(ctx context.Context, year, month int) error {
	if err := c.client.Del(ctx, monthlyReportKey(year, month)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

// Ping はキャッシュの疎通を確認する
func (c *ReportCache) Ping(ctx context.Context) error {
	return Ping(ctx, c.client)
}

func monthlyReportKey(year, month int) string {
	return fmt.Sprintf("reports:monthly:%04d-%02d", year, month)
}
