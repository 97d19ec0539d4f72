package customer

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sanosuguru/cinema-booking-ledger/internal/domain/screening"
)

const (
	MinNameLength = 3
	PhoneLength   = 10
)

// AllowedAreaCodes は受け付ける市外局番
var AllowedAreaCodes = []string{"418", "581"}

// Customer は顧客エンティティを表す
// 同一性は名前と電話番号で判定する
type Customer struct {
	ID             string
	PreferredTypes []screening.Type
	CreatedAt      time.Time

	name    string
	address string
	phone   string
}

// NewCustomer は新しい顧客を作成する
func NewCustomer(name, address, phone string, preferred []screening.Type) (*Customer, error) {
	if utf8.RuneCountInString(name) < MinNameLength {
		return nil, ErrNameTooShort
	}
	c := &Customer{
		name:           name,
		PreferredTypes: preferred,
		CreatedAt:      time.Now(),
	}
	if err := c.SetAddress(address); err != nil {
		return nil, err
	}
	if err := c.SetPhone(phone); err != nil {
		return nil, err
	}
	return c, nil
}

// Name は顧客名を返す
func (c *Customer) Name() string {
	return c.name
}

// Address は住所を返す
func (c *Customer) Address() string {
	return c.address
}

// Phone は電話番号を返す
func (c *Customer) Phone() string {
	return c.phone
}

// SetAddress は住所を変更する
func (c *Customer) SetAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressRequired
	}
	c.address = address
	return nil
}

// SetPhone は電話番号を検証してから変更する
func (c *Customer) SetPhone(phone string) error {
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

// ValidatePhone は電話番号の形式を検証する
func ValidatePhone(phone string) error {
	if len(phone) != PhoneLength {
		return ErrInvalidPhoneLength
	}
	areaOK := false
	for _, code := range AllowedAreaCodes {
		if strings.HasPrefix(phone, code) {
			areaOK = true
			break
		}
	}
	if !areaOK {
		return ErrInvalidAreaCode
	}
	for _, r := range phone[3:] {
		if r < '0' || r > '9' {
			return ErrInvalidPhoneDigit
		}
	}
	return nil
}

// Prefers は指定した上映タイプが好みに含まれるかを返す
func (c *Customer) Prefers(t screening.Type) bool {
	for _, p := range c.PreferredTypes {
		if p == t {
			return true
		}
	}
	return false
}

// Clone は現時点の複製を返す
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.PreferredTypes = slices.Clone(c.PreferredTypes)
	return &cp
}

// Equal は名前と電話番号が一致するかを返す
func (c *Customer) Equal(other *Customer) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.name == other.name && c.phone == other.phone
}

// Key は Equal と整合するマップ用のキーを返す
func (c *Customer) Key() string {
	return c.name + "|" + c.phone
}

func (c *Customer) String() string {
	return c.name
}
