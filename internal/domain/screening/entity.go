package screening

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Screening は上映エンティティを表す
// 座席数は作成時に決まり、予約済み座席数は ReserveSeats / ReleaseSeats でのみ変化する
type Screening struct {
	ID        string
	Type      Type
	Room      string
	StartsAt  time.Time
	CreatedAt time.Time

	capacity int
	reserved int
}

// NewScreening は新しい上映を作成する
func NewScreening(t Type, room string, startsAt time.Time, src CapacitySource) (*Screening, error) {
	if src == nil {
		return nil, ErrCapacitySourceNil
	}
	s := &Screening{
		Type:      t,
		Room:      strings.TrimSpace(room),
		StartsAt:  startsAt,
		CreatedAt: time.Now(),
		capacity:  src.Capacity(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate は上映の検証を行う
func (s *Screening) Validate() error {
	if s.Room == "" {
		return ErrRoomRequired
	}
	if !s.Type.IsValid() {
		return ErrInvalidType
	}
	if s.capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// Capacity は総座席数を返す
func (s *Screening) Capacity() int {
	return s.capacity
}

// Reserved は予約済み座席数を返す
func (s *Screening) Reserved() int {
	return s.reserved
}

// Clone は座席数を含めた現時点の複製を返す
// 複製への変更は元の上映に影響しない
func (s *Screening) Clone() *Screening {
	c := *s
	return &c
}

// Available は空席数を返す
func (s *Screening) Available() int {
	return s.capacity - s.reserved
}

// ReserveSeats は座席を確保する。失敗時は何も変更しない
func (s *Screening) ReserveSeats(count int) error {
	if count <= 0 {
		return ErrInvalidSeatCount
	}
	if count > s.Available() {
		return fmt.Errorf("%w: 要求 %d 席, 空席 %d 席", ErrInsufficientSeats, count, s.Available())
	}
	s.reserved += count
	return nil
}

// ReleaseSeats は確保済みの座席を解放する。失敗時は何も変更しない
func (s *Screening) ReleaseSeats(count int) error {
	if count <= 0 {
		return ErrInvalidSeatCount
	}
	if count > s.reserved {
		return fmt.Errorf("%w: 要求 %d 席, 予約済み %d 席", ErrInsufficientReserved, count, s.reserved)
	}
	s.reserved -= count
	return nil
}

// UnitPrice は上映タイプに応じた1席あたりの料金を返す
func (s *Screening) UnitPrice() decimal.Decimal {
	return UnitPrice(s.Type)
}

// UnitPrice は上映タイプごとの1席あたりの料金
func UnitPrice(t Type) decimal.Decimal {
	return BasePrice.Mul(decimal.NewFromInt(1).Add(t.Surcharge()))
}

// Equal は上映室・日時・タイプがすべて一致するかを返す
func (s *Screening) Equal(other *Screening) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Room == other.Room && s.StartsAt.Equal(other.StartsAt) && s.Type == other.Type
}

// Key は Equal と整合するマップ用のキーを返す
func (s *Screening) Key() string {
	return s.Room + "|" + s.StartsAt.UTC().Format(time.RFC3339Nano) + "|" + s.Type.String()
}

func (s *Screening) String() string {
	return fmt.Sprintf("%s %s (%s)", s.Room, s.StartsAt.Format("2006-01-02 15:04"), s.Type)
}
