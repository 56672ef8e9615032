package models

import "time"

// Transaction каноничная нормализованная форма записи об оплате.
// Все хелперы выручки работают только с этой формой.
type Transaction struct {
	CreatedAt     time.Time `json:"created_at"`
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OrderNumber   string    `json:"order_number,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	PaymentType   string    `json:"payment_type,omitempty"`
	Type          string    `json:"type,omitempty"`
	Status        string    `json:"status,omitempty"`
	Amount        float64   `json:"amount"`
}
