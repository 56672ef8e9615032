package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
)

func newTestOrder(created time.Time) *models.Order {
	order := &models.Order{
		CustomerName: "Ama",
		DeliveryType: models.DeliveryPickup,
		Status:       models.OrderStatusPending,
		Items: []models.OrderItem{
			{Name: "Jollof", MenuItem: 3, Quantity: 2, UnitPrice: 25},
			{Name: "Kelewele", Quantity: 1, UnitPrice: 10},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	order.Total = order.CalculateTotal()
	return order
}

func TestOrderStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	order := newTestOrder(time.Now().UTC())
	require.NoError(t, s.CreateOrder(ctx, order))
	assert.Equal(t, "1", order.ID)
	assert.Equal(t, "ORD-000001", order.OrderNumber)

	second := newTestOrder(time.Now().UTC())
	require.NoError(t, s.CreateOrder(ctx, second))
	assert.Equal(t, "ORD-000002", second.OrderNumber)

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Items, got.Items)
	assert.Equal(t, 60.0, got.Total)
	assert.Equal(t, models.DeliveryPickup, got.DeliveryType)

	byNumber, err := s.GetOrderByNumber(ctx, "ORD-000002")
	require.NoError(t, err)
	assert.Equal(t, second.ID, byNumber.ID)
}

func TestOrderStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetOrder(ctx, "999")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	_, err = s.GetOrder(ctx, "temp_abc")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	_, err = s.GetOrderByNumber(ctx, "ORD-404")
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)

	err = s.UpdateOrder(ctx, &models.Order{ID: "999"})
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestOrderStorage_Update(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	order := newTestOrder(time.Now().UTC())
	require.NoError(t, s.CreateOrder(ctx, order))

	order.Status = models.OrderStatusAccepted
	order.Notes = "no pepper"
	order.Items = order.Items[:1]
	order.Total = order.CalculateTotal()
	order.UpdatedAt = time.Now().UTC().Add(time.Minute)
	require.NoError(t, s.UpdateOrder(ctx, order))

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, got.Status)
	assert.Equal(t, "no pepper", got.Notes)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 50.0, got.Total)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
}

func TestOrderStorage_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, s.CreateOrder(ctx, newTestOrder(base.Add(time.Duration(i)*time.Hour))))
	}

	orders, err := s.ListOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "3", orders[0].ID)
	assert.Equal(t, "2", orders[1].ID)
}

func TestTransactionStorage_CreateAndList(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	order := newTestOrder(time.Now().UTC())
	require.NoError(t, s.CreateOrder(ctx, order))

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	payment := &models.Transaction{
		ID:            uuid.New().String(),
		TransactionID: "TXN-1",
		OrderNumber:   order.OrderNumber,
		PaymentMethod: "cash",
		PaymentType:   "payment",
		Status:        "completed",
		Amount:        60,
		CreatedAt:     base,
	}
	refund := &models.Transaction{
		ID:            uuid.New().String(),
		TransactionID: "TXN-2",
		OrderNumber:   order.OrderNumber,
		PaymentMethod: "cash",
		PaymentType:   "refund",
		Status:        "completed",
		Amount:        10,
		CreatedAt:     base.Add(time.Hour),
	}
	require.NoError(t, s.CreateTransaction(ctx, payment))
	require.NoError(t, s.CreateTransaction(ctx, refund))

	txs, err := s.ListTransactions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "TXN-2", txs[0].TransactionID)
	assert.Equal(t, "refund", txs[0].PaymentType)
	assert.Equal(t, 60.0, txs[1].Amount)
	assert.Equal(t, order.OrderNumber, txs[1].OrderNumber)
}

func TestTransactionStorage_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.CreateTransaction(ctx, &models.Transaction{
		ID:          uuid.New().String(),
		OrderNumber: "ORD-404",
		Amount:      10,
		CreatedAt:   time.Now(),
	})
	assert.Error(t, err)
}
