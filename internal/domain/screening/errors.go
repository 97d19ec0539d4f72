package screening

import "errors"

// Screening ドメインのエラー定義
var (
	ErrRoomRequired         = errors.New("上映室名は必須です")
	ErrInvalidType          = errors.New("上映タイプが不正です")
	ErrInvalidCapacity      = errors.New("座席数は1以上である必要があります")
	ErrCapacitySourceNil    = errors.New("座席数の生成元が指定されていません")
	ErrInvalidSeatCount     = errors.New("座席数は1以上で指定してください")
	ErrInsufficientSeats    = errors.New("空席が不足しています")
	ErrInsufficientReserved = errors.New("解放する座席数が予約済み座席数を超えています")
)
