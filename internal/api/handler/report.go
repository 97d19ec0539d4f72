package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/cinema-booking-ledger/internal/api"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/ledger"
)

type ReportHandler struct {
	service ReportServiceInterface
}

func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

type RoomStatisticsResponse struct {
	Room    string `json:"room"`
	Amount  string `json:"amount"`
	Summary string `json:"summary"`
}

type MonthlyReportResponse struct {
	Month int                      `json:"month"`
	Rooms []RoomStatisticsResponse `json:"rooms"`
}

type CustomerOfTheYearResponse struct {
	Summary    string `json:"summary"`
	CustomerID string `json:"customer_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Amount     string `json:"amount,omitempty"`
}

func toMonthlyReportResponse(month int, stats []ledger.RoomStatistics) MonthlyReportResponse {
	rooms := make([]RoomStatisticsResponse, len(stats))
	for i, s := range stats {
		rooms[i] = RoomStatisticsResponse{Room: s.Room, Amount: s.Amount.StringFixed(2), Summary: s.String()}
	}
	return MonthlyReportResponse{Month: month, Rooms: rooms}
}

// Monthly godoc
// @Summary 月間売上レポート
// @Description 今年の指定月の上映室別売上を返します
// @Tags reports
// @Produce json
// @Param month path int true "月（1-12）"
// @Success 200 {object} MonthlyReportResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /reports/monthly/{month} [get]
func (h *ReportHandler) Monthly(c echo.Context) error {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "月の形式が不正です")
	}
	stats, err := h.service.MonthlyReport(c.Request().Context(), month)
	if err != nil {
		return api.NewHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMonthlyReportResponse(month, stats))
}

// CustomerOfTheYear godoc
// @Summary 今年の最優秀顧客
// @Tags reports
// @Produce json
// @Success 200 {object} CustomerOfTheYearResponse
// @Router /reports/customer-of-the-year [get]
func (h *ReportHandler) CustomerOfTheYear(c echo.Context) error {
	top, ok := h.service.TopCustomer(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, CustomerOfTheYearResponse{Summary: ledger.NoCustomerThisYear})
	}
	return c.JSON(http.StatusOK, CustomerOfTheYearResponse{
		Summary:    top.String(),
		CustomerID: top.Customer.ID,
		Name:       top.Customer.Name(),
		Amount:     top.Amount.StringFixed(2),
	})
}
