package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

func TestEngine_NextDelay(t *testing.T) {
	e := NewEngine(nil)

	tests := []struct {
		opType     models.OperationType
		retryCount int
		want       time.Duration
	}{
		{models.OperationCreateOrder, 0, 2 * time.Second},
		{models.OperationCreateOrder, 1, 2 * time.Second},
		{models.OperationCreateOrder, 2, 4 * time.Second},
		{models.OperationCreateOrder, 5, 32 * time.Second},
		{models.OperationCreateOrder, 6, 60 * time.Second},
		{models.OperationUpdateOrder, 2, 1500 * time.Millisecond},
		{models.OperationUpdateOrder, 3, 2250 * time.Millisecond},
		{models.OperationProfileUpdate, 20, 20 * time.Second},
		{models.OperationPayment, 1, 5 * time.Second},
		{models.OperationPayment, 3, 20 * time.Second},
		{models.OperationPayment, 4, 30 * time.Second},
		{"unknown", 2, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.opType), func(t *testing.T) {
			assert.Equal(t, tt.want, e.NextDelay(tt.opType, tt.retryCount))
		})
	}
}

func TestEngine_BackoffIsMonotonicAndCapped(t *testing.T) {
	e := NewEngine(nil)

	types := []models.OperationType{
		models.OperationCreateOrder,
		models.OperationUpdateOrder,
		models.OperationProfileUpdate,
		models.OperationPayment,
		"unknown",
	}

	for _, opType := range types {
		maxDelay := e.PolicyFor(opType).MaxDelay
		for k := 1; k < 200; k++ {
			cur := e.NextDelay(opType, k)
			next := e.NextDelay(opType, k+1)
			assert.LessOrEqual(t, cur, next, "type %s k=%d", opType, k)
			assert.LessOrEqual(t, next, maxDelay, "type %s k=%d", opType, k)
		}
	}
}

func TestEngine_ShouldRetry(t *testing.T) {
	e := NewEngine(nil)

	assert.True(t, e.ShouldRetry(models.OperationCreateOrder, 4))
	assert.False(t, e.ShouldRetry(models.OperationCreateOrder, 5))
	assert.True(t, e.ShouldRetry(models.OperationPayment, 1))
	assert.False(t, e.ShouldRetry(models.OperationPayment, 2))
	assert.Equal(t, 3, e.MaxRetries(models.OperationProfileUpdate))
}

func TestEngine_Overrides(t *testing.T) {
	e := NewEngine(Policies{
		models.OperationPayment: {MaxRetries: 4, BaseDelay: time.Second, MaxDelay: 0, BackoffFactor: 0.5},
	})

	p := e.PolicyFor(models.OperationPayment)
	assert.Equal(t, 4, p.MaxRetries)
	assert.Equal(t, time.Second, p.MaxDelay)
	assert.Equal(t, 1.0, p.BackoffFactor)

	// остальные типы не затронуты
	assert.Equal(t, 5, e.MaxRetries(models.OperationCreateOrder))
}
