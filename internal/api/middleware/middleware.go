package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
)

// SetupMiddleware は共通ミドルウェアを設定する
// m が nil の場合はHTTPメトリクスを収集しない
func SetupMiddleware(e *echo.Echo, m *metrics.Metrics) {
	// リクエストID
	e.Use(middleware.RequestID())

	// 構造化リクエストログ（zap）
	e.Use(RequestLogger())

	// パニックリカバリー
	e.Use(middleware.Recover())

	if m != nil {
		e.Use(PrometheusMiddleware(m))
	}

	// 予約リクエストは小さいので上限を設ける
	e.Use(middleware.BodyLimit("1M"))

	// CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))
}
