package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api"
	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
)

type ScreeningHandler struct {
	service ScreeningServiceInterface
}

func NewScreeningHandler(service ScreeningServiceInterface) *ScreeningHandler {
	return &ScreeningHandler{service: service}
}

type CreateScreeningRequest struct {
	Type     string `json:"type" validate:"required,screening_type" example:"imax"`
	Room     string `json:"room" validate:"required" example:"Salle 1"`
	StartsAt string `json:"starts_at" validate:"required" example:"2026-10-20T19:30:00-04:00"`
}

type ScreeningResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Room      string    `json:"room"`
	StartsAt  time.Time `json:"starts_at"`
	Capacity  int       `json:"capacity"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
	UnitPrice string    `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

func toScreeningResponse(s *screening.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID: s.ID, Type: s.Type.String(), Room: s.Room, StartsAt: s.StartsAt,
		Capacity: s.Capacity(), Reserved: s.Reserved(), Available: s.Available(),
		UnitPrice: s.UnitPrice().StringFixed(2), CreatedAt: s.CreatedAt,
	}
}

// Create godoc
// @Summary 上映を登録
// @Description 座席数は登録時に決まります
// @Tags screenings
// @Accept json
// @Produce json
// @Param request body CreateScreeningRequest true "上映情報"
// @Success 201 {object} ScreeningResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "同じ上映が登録済み"
// @Router /screenings [post]
func (h *ScreeningHandler) Create(c echo.Context) error {
	var req CreateScreeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := screening.ParseType(req.Type)
	if err != nil {
		return api.NewHTTPError(err)
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "上映日時の形式が不正です")
	}
	s, err := h.service.CreateScreening(c.Request().Context(), application.CreateScreeningInput{
		Type: t, Room: req.Room, StartsAt: startsAt,
	})
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toScreeningResponse(s))
}

// GetByID godoc
// @Summary 上映を取得
// @Tags screenings
// @Produce json
// @Param id path string true "上映ID"
// @Success 200 {object} ScreeningResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /screenings/{id} [get]
func (h *ScreeningHandler) GetByID(c echo.Context) error {
	s, err := h.service.GetScreening(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, toScreeningResponse(s))
}

// List godoc
// @Summary 上映一覧を取得
// @Tags screenings
// @Produce json
// @Success 200 {array} ScreeningResponse
// @Router /screenings [get]
func (h *ScreeningHandler) List(c echo.Context) error {
	screenings := h.service.ListScreenings(c.Request().Context())
	responses := make([]ScreeningResponse, len(screenings))
	for i, s := range screenings {
		responses[i] = toScreeningResponse(s)
	}
	return c.JSON(http.StatusOK, responses)
}

// HasBooking godoc
// @Summary 上映に予約があるか
// @Tags screenings
// @Produce json
// @Param id path string true "上映ID"
// @Success 200 {object} HasBookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /screenings/{id}/has-booking [get]
func (h *ScreeningHandler) HasBooking(c echo.Context) error {
	has, err := h.service.HasBookingForScreening(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, HasBookingResponse{HasBooking: has})
}
