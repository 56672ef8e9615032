package api

import (
	"net/url"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// CreateOrderRequest создание заказа
type CreateOrderRequest struct {
	CustomerName     string             `json:"customer_name,omitempty"`
	CustomerPhone    string             `json:"customer_phone,omitempty"`
	DeliveryType     string             `json:"delivery_type"`
	DeliveryLocation string             `json:"delivery_location,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	Items            []models.OrderItem `json:"items"`
}

// UpdateOrderRequest частичное изменение заказа; nil поля не меняются
type UpdateOrderRequest struct {
	Status *string            `json:"status,omitempty"`
	Notes  *string            `json:"notes,omitempty"`
	Items  []models.OrderItem `json:"items,omitempty"`
}

// PaymentRequest записывает оплату или возврат по заказу
type PaymentRequest = models.Payment

// ProfileUpdateRequest обновление профиля сотрудника
type ProfileUpdateRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone_number,omitempty"`
}

// OrderPath возвращает endpoint одного заказа
func OrderPath(id string) string {
	return PathOrders + "/" + url.PathEscape(id)
}
