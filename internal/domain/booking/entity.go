package booking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
)

const (
	MinSeats = 1
	MaxSeats = 10
)

// Booking は予約エンティティを表す
// 同一性は顧客と上映の組で判定し、座席数は含めない
type Booking struct {
	ID        string
	CreatedAt time.Time

	customer  *customer.Customer
	screening *screening.Screening
	seats     int
}

// NewBooking は新しい予約を作成する
func NewBooking(c *customer.Customer, s *screening.Screening, seats int) (*Booking, error) {
	if c == nil {
		return nil, ErrCustomerRequired
	}
	if s == nil {
		return nil, ErrScreeningRequired
	}
	if seats < MinSeats || seats > MaxSeats {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeatCount, seats)
	}
	return &Booking{
		CreatedAt: time.Now(),
		customer:  c,
		screening: s,
		seats:     seats,
	}, nil
}

// Customer は予約した顧客を返す
func (b *Booking) Customer() *customer.Customer {
	return b.customer
}

// Screening は予約対象の上映を返す
func (b *Booking) Screening() *screening.Screening {
	return b.screening
}

// Seats は予約座席数を返す
func (b *Booking) Seats() int {
	return b.seats
}

// TotalAmount は予約金額（座席数 × 単価）を返す
func (b *Booking) TotalAmount() decimal.Decimal {
	return b.screening.UnitPrice().Mul(decimal.NewFromInt(int64(b.seats)))
}

// Clone は顧客・上映も含めて複製した予約を返す
func (b *Booking) Clone() *Booking {
	cp := *b
	cp.customer = b.customer.Clone()
	cp.screening = b.screening.Clone()
	return &cp
}

// Equal は顧客と上映が一致するかを返す
func (b *Booking) Equal(other *Booking) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.customer.Equal(other.customer) && b.screening.Equal(other.screening)
}

// Key は Equal と整合するマップ用のキーを返す
func (b *Booking) Key() string {
	return b.customer.Key() + "#" + b.screening.Key()
}

func (b *Booking) String() string {
	return fmt.Sprintf("%s - %s x%d", b.customer, b.screening, b.seats)
}
