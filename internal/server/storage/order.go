package storage

import (
	"context"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// OrderStorage описывает хранение заказов
type OrderStorage interface {
	// CreateOrder вставляет заказ и заполняет ID и OrderNumber
	CreateOrder(ctx context.Context, order *models.Order) error

	// GetOrder возвращает ErrOrderNotFound, если заказа нет
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// GetOrderByNumber возвращает ErrOrderNotFound, если заказа нет
	GetOrderByNumber(ctx context.Context, number string) (*models.Order, error)

	// UpdateOrder сохраняет статус, заметки, позиции и сумму
	UpdateOrder(ctx context.Context, order *models.Order) error

	// ListOrders возвращает заказы, новые первыми
	ListOrders(ctx context.Context, limit int) ([]*models.Order, error)
}

// TransactionStorage описывает хранение платежей
type TransactionStorage interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// ListTransactions возвращает транзакции, новые первыми
	ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
}
