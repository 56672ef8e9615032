package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/routing"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/transactions"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

func sampleResult(source transactions.Source, stale bool) *transactions.Result {
	return &transactions.Result{
		LastUpdated: fixedNow.Add(-2 * time.Minute),
		Source:      source,
		Stale:       stale,
		Transactions: []models.Transaction{
			{ID: "t2", Amount: -20, PaymentType: "refund", CreatedAt: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)},
			{ID: "t1", Amount: 100, Status: "paid", OrderNumber: "ORD-1", PaymentMethod: "cash", CreatedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
			{ID: "t0", Amount: 40, Status: "paid", CreatedAt: time.Date(2024, 1, 14, 8, 0, 0, 0, time.UTC)},
		},
	}
}

func TestCli_runTransactions_OfflineSnapshot(t *testing.T) {
	var out bytes.Buffer
	source := &TransactionSourceMock{
		GetFunc: func(ctx context.Context, forceRefresh bool) (*transactions.Result, error) {
			return sampleResult(transactions.SourceOffline, true), nil
		},
	}
	c := newTestCli(&out, Deps{Transactions: source})

	err := c.runTransactions(context.Background(), TransactionOptions{Date: "2024-01-15", Refresh: true, Location: time.UTC})
	require.NoError(t, err)

	assert.True(t, source.GetCalls()[0].ForceRefresh)
	s := out.String()
	assert.Contains(t, s, "Offline data from 2024-01-15 11:58:00 (2m0s old)")
	assert.Contains(t, s, "ORD-1")
	assert.NotContains(t, s, "t0")
	assert.Contains(t, s, "Count:   2 (1 refunds)")
	assert.Contains(t, s, "Revenue: 100.00")
	assert.Contains(t, s, "Refunds: 20.00")
}

func TestCli_runTransactions_Error(t *testing.T) {
	var out bytes.Buffer
	source := &TransactionSourceMock{
		GetFunc: func(ctx context.Context, forceRefresh bool) (*transactions.Result, error) {
			return nil, transactions.ErrNoCachedData
		},
	}
	c := newTestCli(&out, Deps{Transactions: source})

	err := c.runTransactions(context.Background(), TransactionOptions{})
	assert.ErrorIs(t, err, transactions.ErrNoCachedData)
}

func TestCli_runTransactions_Clear(t *testing.T) {
	var out bytes.Buffer
	source := &TransactionSourceMock{
		InvalidateFunc: func(ctx context.Context) error { return nil },
	}
	c := newTestCli(&out, Deps{Transactions: source})

	require.NoError(t, c.runTransactions(context.Background(), TransactionOptions{Clear: true}))
	assert.Len(t, source.InvalidateCalls(), 1)
	assert.Empty(t, source.GetCalls())
	assert.Contains(t, out.String(), "Transaction cache cleared")

	source.InvalidateFunc = func(ctx context.Context) error { return errors.New("disk full") }
	assert.Error(t, c.runTransactions(context.Background(), TransactionOptions{Clear: true}))
}

func TestCli_runTransactions_JSONIncludesStats(t *testing.T) {
	var out bytes.Buffer
	source := &TransactionSourceMock{
		GetFunc: func(ctx context.Context, forceRefresh bool) (*transactions.Result, error) {
			return sampleResult(transactions.SourceAPI, false), nil
		},
	}
	c := newTestCli(&out, Deps{Transactions: source})
	c.SetJSON(true)

	require.NoError(t, c.runTransactions(context.Background(), TransactionOptions{Location: time.UTC}))
	assert.Contains(t, out.String(), `"source": "api"`)
	assert.Contains(t, out.String(), `"total_amount": 140`)
}

func TestCli_runRoute(t *testing.T) {
	var out bytes.Buffer
	resolver := &RouteResolverMock{
		ResolveFunc: func(ctx context.Context, p string) routing.Resolution {
			return routing.Resolution{
				Path:        "/view-transactions",
				Mode:        routing.ModeCached,
				Title:       "Transactions (offline)",
				Message:     "Showing saved data.",
				Actions:     []string{"Retry when online"},
				LastUpdated: fixedNow.Add(-time.Hour),
			}
		},
	}
	c := newTestCli(&out, Deps{Routes: resolver})

	require.NoError(t, c.runRoute(context.Background(), "/View-Transactions/"))
	assert.Equal(t, "/View-Transactions/", resolver.ResolveCalls()[0].P)
	s := out.String()
	assert.Contains(t, s, "/view-transactions: cached")
	assert.Contains(t, s, "Transactions (offline)")
	assert.Contains(t, s, "(1h0m0s old)")
	assert.Contains(t, s, "  - Retry when online")
}

func TestCli_runRoute_Live(t *testing.T) {
	var out bytes.Buffer
	resolver := &RouteResolverMock{
		ResolveFunc: func(ctx context.Context, p string) routing.Resolution {
			return routing.Resolution{Path: p, Mode: routing.ModeLive}
		},
	}
	c := newTestCli(&out, Deps{Routes: resolver})

	require.NoError(t, c.runRoute(context.Background(), "/dashboard"))
	assert.Equal(t, "/dashboard: live\n", out.String())
}
