package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api"
	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(service BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

type CreateBookingRequest struct {
	CustomerID  string `json:"customer_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ScreeningID string `json:"screening_id" validate:"required" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Seats       int    `json:"seats" validate:"required,min=1,max=10" example:"2"`
}

type CancelBookingRequest struct {
	CustomerID  string `query:"customer_id" validate:"required"`
	ScreeningID string `query:"screening_id" validate:"required"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ScreeningID  string    `json:"screening_id"`
	Room         string    `json:"room"`
	StartsAt     time.Time `json:"starts_at"`
	Seats        int       `json:"seats"`
	TotalAmount  string    `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		CustomerID:   b.Customer().ID,
		CustomerName: b.Customer().Name(),
		ScreeningID:  b.Screening().ID,
		Room:         b.Screening().Room,
		StartsAt:     b.Screening().StartsAt,
		Seats:        b.Seats(),
		TotalAmount:  b.TotalAmount().StringFixed(2),
		CreatedAt:    b.CreatedAt,
	}
}

// Create godoc
// @Summary 予約を追加
// @Description 同じ顧客・上映の予約は1件まで
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "重複予約または座席不足"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		CustomerID: req.CustomerID, ScreeningID: req.ScreeningID, Seats: req.Seats,
	})
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約を取消
// @Tags bookings
// @Produce json
// @Param customer_id query string true "顧客ID"
// @Param screening_id query string true "上映ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings [delete]
func (h *BookingHandler) Cancel(c echo.Context) error {
	var req CancelBookingRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.CancelBooking(c.Request().Context(), req.CustomerID, req.ScreeningID)
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// List godoc
// @Summary 予約一覧を取得
// @Description 登録順に返します
// @Tags bookings
// @Produce json
// @Success 200 {array} BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings := h.service.ListBookings(c.Request().Context())
	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, responses)
}
