package screening

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Type は上映タイプを表す
type Type int

const (
	TypeStandard Type = iota
	TypeThreeD
	TypeIMAX
	TypeFourDX
)

// BasePrice は1席あたりの基本料金
var BasePrice = decimal.NewFromInt(10)

var typeNames = map[Type]string{
	TypeStandard: "standard",
	TypeThreeD:   "3d",
	TypeIMAX:     "imax",
	TypeFourDX:   "4dx",
}

// surcharges は基本料金に対する割増率（パーセント）
var surcharges = map[Type]int64{
	TypeStandard: 0,
	TypeThreeD:   10,
	TypeIMAX:     5,
	TypeFourDX:   15,
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsValid は定義済みの上映タイプかを返す
func (t Type) IsValid() bool {
	_, ok := typeNames[t]
	return ok
}

// Surcharge は割増率を小数で返す（例: 10% なら 0.10）
func (t Type) Surcharge() decimal.Decimal {
	return decimal.New(surcharges[t], -2)
}

// ParseType は文字列から上映タイプを取得する
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == key {
			return t, nil
		}
	}
	return 0, ErrInvalidType
}

// MarshalText は JSON などで上映タイプを文字列として出力する
func (t Type) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidType
	}
	return []byte(t.String()), nil
}

// UnmarshalText は文字列から上映タイプを復元する
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
