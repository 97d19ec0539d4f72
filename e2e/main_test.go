package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api/handler"
	"github.com/sanosuguru/cinema-booking-ledger/internal/api/router"
	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/config"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
	redisinfra "github.com/sanosuguru/cinema-booking-ledger/internal/infrastructure/redis"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
)

// testNow はE2Eテストの「現在」。レポートはこの日時を基準に集計される
var testNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo     *echo.Echo
	Service  *application.BookingService
	Registry *prometheus.Registry
	Cleanup  func()
}

// NewTestServer はテスト用サーバーを作成（台帳はテストごとに新しく作る）
func NewTestServer(t *testing.T, capacity int, opts ...application.ServiceOption) *TestServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	base := []application.ServiceOption{
		application.WithClock(func() time.Time { return testNow }),
		application.WithLogger(zap.NewNop()),
		application.WithMetrics(m),
	}
	service := application.NewBookingService(screening.FixedCapacity(capacity), append(base, opts...)...)

	e := router.New(service, router.Options{Metrics: m, Gatherer: reg})
	return &TestServer{Echo: e, Service: service, Registry: reg, Cleanup: func() {}}
}

// NewRedisTestServer はRedisのレポートキャッシュ付きサーバーを作成。Redis未起動時はスキップ
func NewRedisTestServer(t *testing.T, capacity int) *TestServer {
	t.Helper()
	cfg := config.Load()
	client := redisinfra.NewClient(&cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := redisinfra.Ping(ctx, client); err != nil {
		client.Close()
		t.Skipf("Redis接続エラー: %v", err)
	}

	reportCache := redisinfra.NewReportCache(client)
	clearReports := func() {
		for month := 1; month <= 12; month++ {
			_ = reportCache.InvalidateMonthlyReport(context.Background(), testNow.Year(), month)
		}
	}
	// 前回の実行で残ったキャッシュを消す
	clearReports()

	server := NewTestServer(t, capacity, application.WithReportCache(reportCache, time.Minute))
	server.Echo = router.New(server.Service, router.Options{Cache: reportCache})
	server.Cleanup = func() {
		clearReports()
		client.Close()
	}
	return server
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// createCustomer は顧客を登録してIDを返す
func (s *TestServer) createCustomer(t *testing.T, name, phone string) string {
	t.Helper()
	rec := s.Request("POST", "/api/v1/customers", map[string]interface{}{
		"name": name, "address": "12 rue Saint-Jean, Québec", "phone": phone,
	})
	if rec.Code != 201 {
		t.Fatalf("顧客登録に失敗: %d %s", rec.Code, rec.Body.String())
	}
	var resp handler.CustomerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.ID
}

// createScreening は上映を登録してIDを返す
func (s *TestServer) createScreening(t *testing.T, typ, room string, at time.Time) string {
	t.Helper()
	rec := s.Request("POST", "/api/v1/screenings", map[string]interface{}{
		"type": typ, "room": room, "starts_at": at.Format(time.RFC3339),
	})
	if rec.Code != 201 {
		t.Fatalf("上映登録に失敗: %d %s", rec.Code, rec.Body.String())
	}
	var resp handler.ScreeningResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.ID
}
