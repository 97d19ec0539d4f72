package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MetricsConfig はメトリクス認証の設定
type MetricsConfig struct {
	User     string
	Password string
}

// LoadMetricsConfig は環境変数 METRICS_USER / METRICS_PASSWORD からメトリクス認証設定を読み込む
func LoadMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		User:     os.Getenv("METRICS_USER"),
		Password: os.Getenv("METRICS_PASSWORD"),
	}
}

// IsEnabled は認証が有効かどうかを返す
func (c *MetricsConfig) IsEnabled() bool {
	return c != nil && c.User != "" && c.Password != ""
}

// MetricsBasicAuth は /metrics エンドポイント用の Basic 認証ミドルウェア
// ユーザーとパスワードの両方が設定されている場合のみ認証を要求する（未設定はローカル開発用）
func MetricsBasicAuth(cfg *MetricsConfig) echo.MiddlewareFunc {
	if !cfg.IsEnabled() {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	expectedUser := []byte(cfg.User)
	expectedPass := []byte(cfg.Password)
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "metrics",
		Validator: func(username, password string, c echo.Context) (bool, error) {
			// タイミング攻撃を防ぐため ConstantTimeCompare を使用
			userMatch := subtle.ConstantTimeCompare([]byte(username), expectedUser) == 1
			passMatch := subtle.ConstantTimeCompare([]byte(password), expectedPass) == 1
			return userMatch && passMatch, nil
		},
	})
}
