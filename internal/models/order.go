package models

import (
	"fmt"
	"time"
)

// Типы доставки, которые принимает сервер
const (
	DeliveryPickup   = "Pickup"
	DeliveryDelivery = "Delivery"
)

// Серверные статусы заказа
const (
	OrderStatusPending   = "Pending"
	OrderStatusAccepted  = "Accepted"
	OrderStatusFulfilled = "Fulfilled"
	OrderStatusCancelled = "Cancelled"
)

// OrderItem представляет позицию меню в заказе
type OrderItem struct {
	Name      string  `json:"name"`
	MenuItem  int64   `json:"menu_item,omitempty"` // MenuItem id позиции меню на сервере
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order представляет заказ ресторана
type Order struct {
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	ID               string      `json:"id"`
	OrderNumber      string      `json:"order_number"`
	CustomerName     string      `json:"customer_name,omitempty"`
	CustomerPhone    string      `json:"customer_phone,omitempty"`
	DeliveryType     string      `json:"delivery_type"`
	DeliveryLocation string      `json:"delivery_location,omitempty"`
	Status           string      `json:"status"`
	Notes            string      `json:"notes,omitempty"`
	Items            []OrderItem `json:"items"`
	Total            float64     `json:"total"`
}

// CalculateTotal суммирует стоимость всех позиций
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Validate проверяет поля, нужные для отправки заказа.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for i, item := range o.Items {
		if item.Name == "" && item.MenuItem == 0 {
			return fmt.Errorf("item %d: name or menu_item is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %d: unit price cannot be negative", i)
		}
	}
	switch o.DeliveryType {
	case DeliveryPickup:
	case DeliveryDelivery:
		if o.DeliveryLocation == "" {
			return fmt.Errorf("delivery location is required for delivery orders")
		}
	default:
		return fmt.Errorf("unknown delivery type %q", o.DeliveryType)
	}
	return nil
}

// Profile представляет профиль сотрудника
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone_number,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Payment описывает оплату или возврат по заказу.
type Payment struct {
	OrderNumber   string  `json:"order_number"`
	PaymentMethod string  `json:"payment_method"`
	PaymentType   string  `json:"payment_type"`
	Amount        float64 `json:"amount"`
}
