package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約追加の試行数（status: success, duplicate, insufficient_seats, not_found, invalid, error）
	BookingsTotal *prometheus.CounterVec

	// 予約取消の試行数（status: success, not_found, error）
	CancellationsTotal *prometheus.CounterVec

	// 台帳に登録されている予約数
	ActiveBookings prometheus.Gauge

	// 上映室ごとの予約済み座席数（room）
	ReservedSeats *prometheus.GaugeVec

	// 上映室ごとの当月売上（room）
	RoomMonthlyRevenue *prometheus.GaugeVec

	// 集計処理の時間（report: monthly, top_customer）
	ReportDuration *prometheus.HistogramVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking attempts",
			},
			[]string{"status"},
		),
		CancellationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_cancellations_total",
				Help: "Total number of booking cancellation attempts",
			},
			[]string{"status"},
		),
		ActiveBookings: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_bookings",
				Help: "Current number of bookings held in the ledger",
			},
		),
		ReservedSeats: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reserved_seats",
				Help: "Reserved seats per room across all screenings",
			},
			[]string{"room"},
		),
		RoomMonthlyRevenue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "room_monthly_revenue",
				Help: "Booking revenue of the current month per room",
			},
			[]string{"room"},
		),
		ReportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_report_duration_seconds",
				Help:    "Time spent computing ledger reports",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"report"},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.CancellationsTotal,
		m.ActiveBookings,
		m.ReservedSeats,
		m.RoomMonthlyRevenue,
		m.ReportDuration,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
