package ledger

import "errors"

// Ledger のエラー定義
var (
	ErrBookingRequired  = errors.New("予約は必須です")
	ErrDuplicateBooking = errors.New("この顧客と上映の予約は既に存在します")
	ErrBookingNotFound  = errors.New("予約が見つかりません")
	ErrMonthOutOfRange  = errors.New("月は1から12の整数である必要があります")
)
