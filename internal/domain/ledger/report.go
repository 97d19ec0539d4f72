package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
)

// NoCustomerThisYear は今年の対象予約がない場合に TopCustomerOfYear が返す文言
const NoCustomerThisYear = "今年予約した顧客はいません"

// RoomStatistics は上映室ごとの月間売上
type RoomStatistics struct {
	Room   string          `json:"room"`
	Amount decimal.Decimal `json:"amount"`
}

func (r RoomStatistics) String() string {
	return fmt.Sprintf("%s : %s$", r.Room, r.Amount.StringFixed(2))
}

// CustomerTotal は顧客ごとの累計金額
type CustomerTotal struct {
	Customer *customer.Customer
	Amount   decimal.Decimal
}

func (c CustomerTotal) String() string {
	return fmt.Sprintf("%s : %s$", c.Customer, c.Amount.StringFixed(2))
}
