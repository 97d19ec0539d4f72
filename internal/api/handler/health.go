package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger は依存先の疎通確認
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler はヘルスチェックハンドラー
type HealthHandler struct {
	cache Pinger
}

// NewHealthHandler はHealthHandlerを作成する
// cache が nil の場合はキャッシュの確認を行わない
func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string `json:"status"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// Check はヘルスチェックを行う
// キャッシュは任意の依存なので、疎通できなくても 200 で degraded を返す
// @Summary ヘルスチェック
// @Description アプリケーションの健全性を確認する
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	resp := HealthResponse{
		Status:    "ok",
		Cache:     "disabled",
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
		}
	}
	return c.JSON(http.StatusOK, resp)
}
