package application

import "errors"

var (
	ErrCustomerNotFound       = errors.New("顧客が見つかりません")
	ErrCustomerAlreadyExists  = errors.New("同じ名前と電話番号の顧客が既に登録されています")
	ErrScreeningNotFound      = errors.New("上映が見つかりません")
	ErrScreeningAlreadyExists = errors.New("同じ上映室・日時・種別の上映が既に登録されています")
)
