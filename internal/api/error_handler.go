package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/booking"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/ledger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
	"github.com/sanosuguru/cinema-booking-ledger/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

var (
	notFoundErrors = []error{
		application.ErrCustomerNotFound,
		application.ErrScreeningNotFound,
		ledger.ErrBookingNotFound,
	}
	conflictErrors = []error{
		ledger.ErrDuplicateBooking,
		application.ErrCustomerAlreadyExists,
		application.ErrScreeningAlreadyExists,
		screening.ErrInsufficientSeats,
		screening.ErrInsufficientReserved,
	}
	badRequestErrors = []error{
		customer.ErrNameTooShort,
		customer.ErrAddressRequired,
		customer.ErrInvalidPhoneLength,
		customer.ErrInvalidAreaCode,
		customer.ErrInvalidPhoneDigit,
		screening.ErrRoomRequired,
		screening.ErrInvalidType,
		screening.ErrInvalidCapacity,
		screening.ErrInvalidSeatCount,
		booking.ErrCustomerRequired,
		booking.ErrScreeningRequired,
		booking.ErrInvalidSeatCount,
		ledger.ErrBookingRequired,
		ledger.ErrMonthOutOfRange,
	}
)

// StatusFor はドメインエラーに対応するHTTPステータスを返す
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewHTTPError はドメインエラーをステータス付きの echo.HTTPError に変換する
// 5xx の場合は内部のエラー内容を返さない
func NewHTTPError(err error) *echo.HTTPError {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		return echo.NewHTTPError(code, "内部サーバーエラー").SetInternal(err)
	}
	return echo.NewHTTPError(code, err.Error())
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = NewHTTPError(err)
	}

	code := he.Code
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(code)
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
