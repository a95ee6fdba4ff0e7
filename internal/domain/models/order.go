package models

import "time"

// OrderStatus — закрытый перечень статусов заказа.
// Скачивание разрешено только для статуса "paid".
type OrderStatus string

const (
	StatusPaid     OrderStatus = "paid"
	StatusRefunded OrderStatus = "refunded"
	StatusExpired  OrderStatus = "expired"
)

// Valid проверяет, что статус входит в перечень допустимых.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusRefunded, StatusExpired:
		return true
	}
	return false
}

// Order представляет покупку: несёт токен скачивания, срок действия и бюджет загрузок.
// После создания заказ неизменяем, кроме RemainingDownloads (и UpdatedAt),
// которые уменьшает только поток скачивания.
type Order struct {
	ID                 string      `json:"id,omitempty"`
	Email              string      `json:"email" validate:"required,email"`
	AssetID            string      `json:"asset_id" validate:"required"`
	Token              string      `json:"token"`
	ExpiresAt          time.Time   `json:"expires_at"` // UTC, создание + 24 часа
	RemainingDownloads int         `json:"remaining_downloads" validate:"gte=0"`
	Status             OrderStatus `json:"status"`
	CreatedAt          time.Time   `json:"created_at,omitempty"`
	UpdatedAt          time.Time   `json:"updated_at,omitempty"`
}
