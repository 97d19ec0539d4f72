package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/ledger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/logger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
)

// ReportSource は定期集計の対象となるレポートを提供する
type ReportSource interface {
	MonthlyReport(ctx context.Context, month int) ([]ledger.RoomStatistics, error)
	TopCustomerOfYear(ctx context.Context) string
}

// ReportRefresher は当月の売上レポートを定期的に再計算し、メトリクスとログに反映するワーカー
type ReportRefresher struct {
	source   ReportSource
	metrics  *metrics.Metrics
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewReportRefresher は新しいリフレッシャーを作成
// m が nil の場合はログ出力のみ行う
func NewReportRefresher(source ReportSource, m *metrics.Metrics, interval time.Duration) *ReportRefresher {
	return &ReportRefresher{
		source:   source,
		metrics:  m,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はリフレッシャーを開始。起動直後に1回集計する
func (r *ReportRefresher) Start(ctx context.Context) {
	logger.Info("売上レポート更新ワーカー開始", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("売上レポート更新ワーカー停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("売上レポート更新ワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Stop はリフレッシャーを停止し、終了を待つ
func (r *ReportRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// refresh は当月のレポートと今年の最優秀顧客を集計する
func (r *ReportRefresher) refresh(ctx context.Context) {
	log := logger.Get()
	month := int(r.now().Month())

	report, err := r.source.MonthlyReport(ctx, month)
	if err != nil {
		log.Error("月間売上レポートの集計に失敗", logger.Month(month), zap.Error(err))
		return
	}

	if r.metrics != nil {
		// 予約がなくなった上映室の値を残さない
		r.metrics.RoomMonthlyRevenue.Reset()
		for _, stat := range report {
			r.metrics.RoomMonthlyRevenue.WithLabelValues(stat.Room).Set(stat.Amount.InexactFloat64())
		}
	}

	lines := make([]string, len(report))
	for i, stat := range report {
		lines[i] = stat.String()
	}
	log.Info("月間売上レポートを更新",
		logger.Month(month),
		zap.Strings("rooms", lines),
		zap.String("customer_of_the_year", r.source.TopCustomerOfYear(ctx)),
	)
}
