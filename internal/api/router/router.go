package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api"
	"github.com/sanosuguru/cinema-booking-ledger/internal/api/handler"
	"github.com/sanosuguru/cinema-booking-ledger/internal/api/middleware"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
)

// Services はルーティング対象のサービス群
type Services interface {
	handler.CustomerServiceInterface
	handler.ScreeningServiceInterface
	handler.BookingServiceInterface
	handler.ReportServiceInterface
}

// Options はルーターの任意設定
type Options struct {
	// HTTPメトリクスの記録先。nil なら収集しない
	Metrics *metrics.Metrics
	// /metrics で公開するレジストリ。nil なら /metrics を公開しない
	Gatherer prometheus.Gatherer
	// /metrics の Basic 認証
	MetricsAuth *middleware.MetricsConfig
	// ヘルスチェックで疎通確認するキャッシュ
	Cache handler.Pinger
}

// New はミドルウェアとルートを設定した Echo を作成する
func New(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	middleware.SetupMiddleware(e, opts.Metrics)
	Register(e, svc, opts)
	return e
}

// Register はルートを登録する
func Register(e *echo.Echo, svc Services, opts Options) {
	customerHandler := handler.NewCustomerHandler(svc)
	screeningHandler := handler.NewScreeningHandler(svc)
	bookingHandler := handler.NewBookingHandler(svc)
	reportHandler := handler.NewReportHandler(svc)
	healthHandler := handler.NewHealthHandler(opts.Cache)

	e.GET("/health", healthHandler.Check)
	if opts.Gatherer != nil {
		e.GET(middleware.MetricsPath,
			echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})),
			middleware.MetricsBasicAuth(opts.MetricsAuth),
		)
	}

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/customers", customerHandler.Create)
	v1.GET("/customers/:id", customerHandler.GetByID)
	v1.PUT("/customers/:id/phone", customerHandler.UpdatePhone)
	v1.GET("/customers/:id/has-booking", customerHandler.HasBooking)

	v1.POST("/screenings", screeningHandler.Create)
	v1.GET("/screenings", screeningHandler.List)
	v1.GET("/screenings/:id", screeningHandler.GetByID)
	v1.GET("/screenings/:id/has-booking", screeningHandler.HasBooking)

	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/bookings", bookingHandler.List)
	v1.DELETE("/bookings", bookingHandler.Cancel)

	v1.GET("/reports/monthly/:month", reportHandler.Monthly)
	v1.GET("/reports/customer-of-the-year", reportHandler.CustomerOfTheYear)
}
