package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/booking"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/customer"
	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
)

// Clock は現在時刻を返す
// 集計の年月や「本日」は Clock が返す時刻のタイムゾーンで判定する
type Clock func() time.Time

// PeriodOf は t を loc に変換したときの年と月を返す
func PeriodOf(t time.Time, loc *time.Location) (int, time.Month) {
	local := t.In(loc)
	return local.Year(), local.Month()
}

// Manager は予約台帳。予約の追加・取消を通じて上映の座席数を更新し、集計を行う
// 単一の呼び出し元を前提としており、並行利用する場合は外側で排他すること
type Manager struct {
	bookings []*booking.Booking
	now      Clock
}

// Option は Manager の設定
type Option func(*Manager)

// WithClock は集計に使う現在時刻の取得元を差し替える
func WithClock(c Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.now = c
		}
	}
}

// NewManager は空の台帳を作成する
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		bookings: make([]*booking.Booking, 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddBooking は予約を台帳に追加する
// 同じ顧客・上映の予約があれば ErrDuplicateBooking、座席確保に失敗すればそのエラーを返し、
// いずれの場合も台帳は変更しない
func (m *Manager) AddBooking(b *booking.Booking) error {
	if b == nil {
		return ErrBookingRequired
	}
	if m.indexOf(b.Customer(), b.Screening()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateBooking, b)
	}
	if err := b.Screening().ReserveSeats(b.Seats()); err != nil {
		return err
	}
	m.bookings = append(m.bookings, b)
	return nil
}

// CancelBooking は顧客・上映に一致する予約を取り消し、取り消した予約を返す
func (m *Manager) CancelBooking(c *customer.Customer, s *screening.Screening) (*booking.Booking, error) {
	i := m.indexOf(c, s)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s / %s", ErrBookingNotFound, c, s)
	}
	found := m.bookings[i]
	if err := found.Screening().ReleaseSeats(found.Seats()); err != nil {
		return nil, err
	}
	m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
	return found, nil
}

// HasBookingForCustomer は顧客の予約が1件以上あるかを返す
func (m *Manager) HasBookingForCustomer(c *customer.Customer) bool {
	for _, b := range m.bookings {
		if b.Customer().Equal(c) {
			return true
		}
	}
	return false
}

// HasBookingForScreening は上映の予約が1件以上あるかを返す
func (m *Manager) HasBookingForScreening(s *screening.Screening) bool {
	for _, b := range m.bookings {
		if b.Screening().Equal(s) {
			return true
		}
	}
	return false
}

// Find は顧客・上映に一致する予約を返す
func (m *Manager) Find(c *customer.Customer, s *screening.Screening) (*booking.Booking, bool) {
	i := m.indexOf(c, s)
	if i < 0 {
		return nil, false
	}
	return m.bookings[i], true
}

// Bookings は登録順の予約一覧のコピーを返す
func (m *Manager) Bookings() []*booking.Booking {
	out := make([]*booking.Booking, len(m.bookings))
	copy(out, m.bookings)
	return out
}

// Len は予約件数を返す
func (m *Manager) Len() int {
	return len(m.bookings)
}

// MonthlyReport は今年の指定月に上映される予約の売上を上映室ごとに集計する
// 上映室は最初に現れた順に並ぶ
func (m *Manager) MonthlyReport(month int) ([]RoomStatistics, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	now := m.now()

	stats := make([]RoomStatistics, 0)
	index := make(map[string]int)
	for _, b := range m.bookings {
		year, mon := PeriodOf(b.Screening().StartsAt, now.Location())
		if year != now.Year() || int(mon) != month {
			continue
		}
		room := b.Screening().Room
		if i, ok := index[room]; ok {
			stats[i].Amount = stats[i].Amount.Add(b.TotalAmount())
			continue
		}
		index[room] = len(stats)
		stats = append(stats, RoomStatistics{Room: room, Amount: b.TotalAmount()})
	}
	return stats, nil
}

// TopCustomer は今年（本日まで）の上映の予約金額が最も多い顧客を返す
// 同額の場合は予約順で先に現れた顧客を優先する
func (m *Manager) TopCustomer() (CustomerTotal, bool) {
	now := m.now()
	endOfToday := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	totals := make([]CustomerTotal, 0)
	index := make(map[string]int)
	for _, b := range m.bookings {
		date := b.Screening().StartsAt
		if year, _ := PeriodOf(date, now.Location()); !date.Before(endOfToday) || year != now.Year() {
			continue
		}
		key := b.Customer().Key()
		if i, ok := index[key]; ok {
			totals[i].Amount = totals[i].Amount.Add(b.TotalAmount())
			continue
		}
		index[key] = len(totals)
		totals = append(totals, CustomerTotal{Customer: b.Customer(), Amount: b.TotalAmount()})
	}

	best := CustomerTotal{Amount: decimal.Zero}
	found := false
	for _, t := range totals {
		if t.Amount.GreaterThan(best.Amount) {
			best = t
			found = true
		}
	}
	return best, found
}

// TopCustomerOfYear は今年の最優秀顧客を「顧客 : 金額」の形式で返す
func (m *Manager) TopCustomerOfYear() string {
	top, ok := m.TopCustomer()
	if !ok {
		return NoCustomerThisYear
	}
	return top.String()
}

func (m *Manager) indexOf(c *customer.Customer, s *screening.Screening) int {
	for i, b := range m.bookings {
		if b.Customer().Equal(c) && b.Screening().Equal(s) {
			return i
		}
	}
	return -1
}
