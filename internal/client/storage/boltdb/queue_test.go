package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

func TestStorage_QueueRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.LoadQueue(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueNotFound)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	snapshot := &storage.QueueSnapshot{
		SavedAt: now,
		Operations: []*models.Operation{
			{
				ID:         "op-1",
				Type:       models.OperationCreateOrder,
				Status:     models.OperationPending,
				CreatedAt:  now,
				MaxRetries: 5,
				Payload: models.RequestPayload{
					Endpoint: "/api/orders",
					Method:   "POST",
					Body:     []byte(`{"delivery_type":"Pickup"}`),
				},
			},
			{
				ID:         "op-2",
				Type:       models.OperationPayment,
				Status:     models.OperationRetrying,
				RetryCount: 1,
				CreatedAt:  now,
				LastError:  "server error (503)",
				LastStatus: 503,
			},
		},
		Queue: []string{"op-1"},
	}

	require.NoError(t, store.SaveQueue(ctx, snapshot))

	got, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	assert.True(t, now.Equal(got.SavedAt))
	assert.Equal(t, []string{"op-1"}, got.Queue)
	require.Len(t, got.Operations, 2)
	assert.Equal(t, "op-1", got.Operations[0].ID)
	assert.JSONEq(t, `{"delivery_type":"Pickup"}`, string(got.Operations[0].Payload.Body))
	assert.Equal(t, 1, got.Operations[1].RetryCount)
	assert.Equal(t, 503, got.Operations[1].LastStatus)

	// Перезапись
	snapshot.Operations = snapshot.Operations[:1]
	snapshot.Queue = nil
	require.NoError(t, store.SaveQueue(ctx, snapshot))

	got, err = store.LoadQueue(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Operations, 1)
	assert.Empty(t, got.Queue)

	require.NoError(t, store.ClearQueue(ctx))
	_, err = store.LoadQueue(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueNotFound)
}
