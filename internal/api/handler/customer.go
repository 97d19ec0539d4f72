package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api"
	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
)

type CustomerHandler struct {
	service CustomerServiceInterface
}

func NewCustomerHandler(service CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type CreateCustomerRequest struct {
	Name           string   `json:"name" validate:"required" example:"Xavier"`
	Address        string   `json:"address" validate:"required" example:"12 rue Saint-Jean, Québec"`
	Phone          string   `json:"phone" validate:"required" example:"4185551234"`
	PreferredTypes []string `json:"preferred_types" validate:"dive,screening_type" example:"imax,3d"`
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone" validate:"required" example:"5815550000"`
}

type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	PreferredTypes []string  `json:"preferred_types"`
	CreatedAt      time.Time `json:"created_at"`
}

type HasBookingResponse struct {
	HasBooking bool `json:"has_booking"`
}

func toCustomerResponse(c *customer.Customer) CustomerResponse {
	types := make([]string, len(c.PreferredTypes))
	for i, t := range c.PreferredTypes {
		types[i] = t.String()
	}
	return CustomerResponse{
		ID: c.ID, Name: c.Name(), Address: c.Address(), Phone: c.Phone(),
		PreferredTypes: types, CreatedAt: c.CreatedAt,
	}
}

// Create godoc
// @Summary 顧客を登録
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "顧客情報"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "同じ名前と電話番号の顧客が登録済み"
// @Router /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	preferred := make([]screening.Type, 0, len(req.PreferredTypes))
	for _, name := range req.PreferredTypes {
		t, err := screening.ParseType(name)
		if err != nil {
			return api.NewHTTPError(err)
		}
		preferred = append(preferred, t)
	}
	cu, err := h.service.RegisterCustomer(c.Request().Context(), application.RegisterCustomerInput{
		Name: req.Name, Address: req.Address, Phone: req.Phone, PreferredTypes: preferred,
	})
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toCustomerResponse(cu))
}

// GetByID godoc
// @Summary 顧客を取得
// @Tags customers
// @Produce json
// @Param id path string true "顧客ID"
// @Success 200 {object} CustomerResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(c echo.Context) error {
	cu, err := h.service.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, toCustomerResponse(cu))
}

// UpdatePhone godoc
// @Summary 顧客の電話番号を変更
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "顧客ID"
// @Param request body UpdatePhoneRequest true "電話番号"
// @Success 200 {object} CustomerResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /customers/{id}/phone [put]
func (h *CustomerHandler) UpdatePhone(c echo.Context) error {
	var req UpdatePhoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cu, err := h.service.UpdateCustomerPhone(c.Request().Context(), c.Param("id"), req.Phone)
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, toCustomerResponse(cu))
}

// HasBooking godoc
// @Summary 顧客に予約があるか
// @Tags customers
// @Produce json
// @Param id path string true "顧客ID"
// @Success 200 {object} HasBookingResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /customers/{id}/has-booking [get]
func (h *CustomerHandler) HasBooking(c echo.Context) error {
	has, err := h.service.HasBookingForCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, HasBookingResponse{HasBooking: has})
}
