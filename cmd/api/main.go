package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api/handler"
	"github.com/sanosuguru/cinema-booking-ledger/internal/api/middleware"
	"github.com/sanosuguru/cinema-booking-ledger/internal/api/router"
	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/config"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
	redisinfra "github.com/sanosuguru/cinema-booking-ledger/internal/infrastructure/redis"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/logger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/metrics"
	"github.com/sanosuguru/cinema-booking-ledger/internal/worker"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, ".env の読み込みに失敗しました: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	log := logger.Init(cfg.Server.Env)
	defer log.Sync()

	m := metrics.Init()

	opts := []application.ServiceOption{application.WithMetrics(m)}
	var cache handler.Pinger
	if cfg.Redis.Enabled {
		client := redisinfra.NewClient(&cfg.Redis)
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisinfra.Ping(ctx, client)
		cancel()
		if err != nil {
			// キャッシュは任意なので、つながらなくても台帳だけで起動する
			log.Warn("Redisに接続できないため、レポートキャッシュなしで起動します", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		} else {
			reportCache := redisinfra.NewReportCache(client)
			opts = append(opts, application.WithReportCache(reportCache, cfg.Ledger.ReportCacheTTL))
			cache = reportCache
			log.Info("Redisに接続しました", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	capacity := screening.NewRandomCapacity(cfg.Ledger.MinCapacity, cfg.Ledger.MaxCapacity, cfg.Ledger.CapacitySeed)
	service := application.NewBookingService(capacity, opts...)

	e := router.New(service, router.Options{
		Metrics:     m,
		Gatherer:    prometheus.DefaultGatherer,
		MetricsAuth: middleware.LoadMetricsConfig(),
		Cache:       cache,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := worker.NewReportRefresher(service, m, cfg.Ledger.ReportRefreshInterval)
	go refresher.Start(ctx)

	go func() {
		log.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("サーバーをシャットダウンしています...")

	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("サーバーシャットダウンエラー", zap.Error(err))
	}
}
