package customer

import "errors"

// Customer ドメインのエラー定義
var (
	ErrNameTooShort       = errors.New("顧客名は3文字以上である必要があります")
	ErrAddressRequired    = errors.New("住所は必須です")
	ErrInvalidPhoneLength = errors.New("電話番号はちょうど10桁である必要があります")
	ErrInvalidAreaCode    = errors.New("電話番号の市外局番は418または581である必要があります")
	ErrInvalidPhoneDigit  = errors.New("電話番号に数字以外の文字が含まれています")
)
