package logger

import "go.uber.org/zap"

// 予約台帳のログで共通に使うフィールド
// キー名を揃えておくとログ検索で顧客・上映単位に絞り込める

func CustomerID(id string) zap.Field {
	return zap.String("customer_id", id)
}

func ScreeningID(id string) zap.Field {
	return zap.String("screening_id", id)
}

func BookingID(id string) zap.Field {
	return zap.String("booking_id", id)
}

func Seats(n int) zap.Field {
	return zap.Int("seats", n)
}

func Month(m int) zap.Field {
	return zap.Int("month", m)
}
