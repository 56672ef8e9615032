package sqlite

import (
	"context"
	"fmt"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// CreateTransaction записывает оплату или возврат
func (s *Storage) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, transaction_id, order_number, payment_method, payment_type, status, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tx.ID,
		tx.TransactionID,
		tx.OrderNumber,
		tx.PaymentMethod,
		tx.PaymentType,
		tx.Status,
		tx.Amount,
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactions возвращает транзакции, новые первыми
func (s *Storage) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, order_number, payment_method, payment_type, status, amount, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.TransactionID,
			&tx.OrderNumber,
			&tx.PaymentMethod,
			&tx.PaymentType,
			&tx.Status,
			&tx.Amount,
			&tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}
