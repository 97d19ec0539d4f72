package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/logger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Get()
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(prev) })
	return logs
}

func TestSetupMiddleware(t *testing.T) {
	e := echo.New()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	SetupMiddleware(e, m)

	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Body.String())
	// echo の RequestID ミドルウェアがIDを付与する
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/test", "200")))
}

func TestSetupMiddleware_WithoutMetrics(t *testing.T) {
	e := echo.New()
	SetupMiddleware(e, nil)
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	logs := observeLogs(t)
	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/bookings/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings/42?x=1", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "/bookings/:id", fields["route"])
	assert.Equal(t, "x=1", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestRequestLogger_WithError(t *testing.T) {
	logs := observeLogs(t)
	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/error", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	entries := logs.FilterMessage("client error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.EqualValues(t, http.StatusBadRequest, entries[0].ContextMap()["status"])
}

func TestRequestLogger_ServerError(t *testing.T) {
	logs := observeLogs(t)
	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/server-error", func(c echo.Context) error {
		return c.String(http.StatusInternalServerError, "internal error")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/server-error", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("server error").Len())
}

func TestPrometheusMiddleware(t *testing.T) {
	e := echo.New()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	e.Use(PrometheusMiddleware(m))

	e.GET("/screenings/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screenings/"+id, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// ルート定義のパスで集約される
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/screenings/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestPrometheusMiddleware_WithError(t *testing.T) {
	e := echo.New()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	e.Use(PrometheusMiddleware(m))

	e.GET("/error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "conflict")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/error", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/error", "409")))
}

func TestPrometheusMiddleware_SkipsMetricsPath(t *testing.T) {
	e := echo.New()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	e.Use(PrometheusMiddleware(m))
	e.GET(MetricsPath, func(c echo.Context) error {
		return c.String(http.StatusOK, "# metrics")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, testutil.CollectAndCount(m.HTTPRequestsTotal))
}
