package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrCustomerRequired  = errors.New("予約には顧客が必要です")
	ErrScreeningRequired = errors.New("予約には上映が必要です")
	ErrInvalidSeatCount  = errors.New("予約座席数は1以上10以下である必要があります")
)
