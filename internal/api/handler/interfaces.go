package handler

import (
	"context"

	"github.com/sanosuguru/cinema-booking-ledger/internal/application"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/booking"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/ledger"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
)

// CustomerServiceInterface は顧客サービスのインターフェース
type CustomerServiceInterface interface {
	RegisterCustomer(ctx context.Context, input application.RegisterCustomerInput) (*customer.Customer, error)
	GetCustomer(ctx context.Context, id string) (*customer.Customer, error)
	UpdateCustomerPhone(ctx context.Context, id, phone string) (*customer.Customer, error)
	HasBookingForCustomer(ctx context.Context, customerID string) (bool, error)
}

// ScreeningServiceInterface は上映サービスのインターフェース
type ScreeningServiceInterface interface {
	CreateScreening(ctx context.Context, input application.CreateScreeningInput) (*screening.Screening, error)
	GetScreening(ctx context.Context, id string) (*screening.Screening, error)
	ListScreenings(ctx context.Context) []*screening.Screening
	HasBookingForScreening(ctx context.Context, screeningID string) (bool, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	CancelBooking(ctx context.Context, customerID, screeningID string) (*booking.Booking, error)
	ListBookings(ctx context.Context) []*booking.Booking
}

// ReportServiceInterface は集計サービスのインターフェース
type ReportServiceInterface interface {
	MonthlyReport(ctx context.Context, month int) ([]ledger.RoomStatistics, error)
	TopCustomer(ctx context.Context) (ledger.CustomerTotal, bool)
}
