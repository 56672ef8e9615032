package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
)

const orderColumns = `id, order_number, customer_name, customer_phone, delivery_type, delivery_location,
	status, notes, items, total, created_at, updated_at`

// CreateOrder вставляет заказ и присваивает ему id и номер
func (s *Storage) CreateOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_name, customer_phone, delivery_type, delivery_location,
			status, notes, items, total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		order.CustomerName,
		order.CustomerPhone,
		order.DeliveryType,
		order.DeliveryLocation,
		order.Status,
		order.Notes,
		string(items),
		order.Total,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get order id: %w", err)
	}

	number := fmt.Sprintf("ORD-%06d", id)
	if _, err := tx.ExecContext(ctx, `UPDATE orders SET order_number = ? WHERE id = ?`, number, id); err != nil {
		return fmt.Errorf("failed to set order number: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.ID = strconv.FormatInt(id, 10)
	order.OrderNumber = number
	return nil
}

// GetOrder возвращает заказ по id
func (s *Storage) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, storage.ErrOrderNotFound
	}
	return scanOrder(s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, n))
}

// GetOrderByNumber возвращает заказ по номеру
func (s *Storage) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	return scanOrder(s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = ?`, number))
}

// UpdateOrder сохраняет изменяемые поля
func (s *Storage) UpdateOrder(ctx context.Context, order *models.Order) error {
	n, err := strconv.ParseInt(order.ID, 10, 64)
	if err != nil {
		return storage.ErrOrderNotFound
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, notes = ?, items = ?, total = ?, updated_at = ?
		WHERE id = ?
	`, order.Status, order.Notes, string(items), order.Total, order.UpdatedAt, n)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return expectRow(result, storage.ErrOrderNotFound)
}

// ListOrders возвращает заказы, новые первыми
func (s *Storage) ListOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*models.Order, error) {
	var (
		order  models.Order
		id     int64
		number sql.NullString
		items  string
	)
	err := row.Scan(
		&id,
		&number,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.DeliveryType,
		&order.DeliveryLocation,
		&order.Status,
		&order.Notes,
		&items,
		&order.Total,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.ID = strconv.FormatInt(id, 10)
	order.OrderNumber = number.String
	if err := json.Unmarshal([]byte(items), &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items of order %d: %w", id, err)
	}
	return &order, nil
}
