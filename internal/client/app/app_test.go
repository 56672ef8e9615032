package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/routing"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage/boltdb"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/transactions"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/config"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

type fakeBackend struct {
	mu      sync.Mutex
	orders  []api.CreateOrderRequest
	bearers []string
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.PathHealth, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST "+api.PathOrders, func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.orders = append(b.orders, req)
		b.bearers = append(b.bearers, r.Header.Get("Authorization"))
		b.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Order{
			ID:           "42",
			OrderNumber:  "ORD-42",
			DeliveryType: req.DeliveryType,
			Status:       models.OrderStatusPending,
			Items:        req.Items,
		})
	})
	mux.HandleFunc("POST "+api.PathLogin, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "fresh-token",
			Username:    "frontdesk",
			Role:        "frontdesk",
			ExpiresIn:   3600,
		})
	})
	mux.HandleFunc("GET "+api.PathTransactions, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":"t1","amount":25,"status":"paid","created_at":"2024-01-15T08:00:00Z"}]}`))
	})
	return mux
}

func (b *fakeBackend) received() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.orders)
}

// seedSession пишет сессию прямо в базу клиента, как после прошлого входа
func seedSession(t *testing.T, cfg *config.Config, expiresAt time.Time) {
	t.Helper()
	st, err := boltdb.New(context.Background(), cfg.DBPath)
	require.NoError(t, err)
	require.NoError(t, st.SaveAuth(context.Background(), &storage.AuthData{
		Username:    "frontdesk",
		AccessToken: "seeded-token",
		ExpiresAt:   expiresAt.Unix(),
	}))
	require.NoError(t, st.Close())
}

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	cfg, err := config.Load(config.New(), writeEmptyConfig(t))
	require.NoError(t, err)
	cfg.ServerURL = serverURL
	cfg.DBPath = filepath.Join(t.TempDir(), "client.db")
	return cfg
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adakings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
	return path
}

func newTestApp(t *testing.T, cfg *config.Config, opts ...Option) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(context.Background(), cfg, logger, append(opts, WithoutRuntimeMetrics())...)
	require.NoError(t, err)
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestApp_ChecksBackendOnStartup(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	a := newTestApp(t, testConfig(t, srv.URL))
	assert.True(t, a.Network.IsOnline())

	offline := newTestApp(t, testConfig(t, "http://127.0.0.1:1"))
	assert.False(t, offline.Network.IsOnline())
}

func TestApp_OrderCreatedOnlineIsConfirmed(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	seedSession(t, cfg, time.Now().Add(time.Hour))
	a := newTestApp(t, cfg, WithOnline(true))
	ctx := context.Background()

	local, err := a.Orders.CreateOrder(ctx, &models.Order{
		DeliveryType: models.DeliveryPickup,
		Items:        []models.OrderItem{{Name: "Jollof", Quantity: 2, UnitPrice: 45}},
	})
	require.NoError(t, err)
	assert.True(t, local.Temporary)

	require.Eventually(t, func() bool {
		orders := a.Orders.ListOrders(ctx)
		return len(orders) == 1 && orders[0].Order.ID == "42"
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, backend.received())
	status := a.Queue.GetSyncStatus()
	assert.Zero(t, status.Pending+status.Queued+status.Retrying+status.Failed)
}

func TestApp_OfflineOrderSurvivesRestart(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	first, err := New(ctx, cfg, logger, WithOnline(false), WithoutRuntimeMetrics())
	require.NoError(t, err)
	require.NoError(t, first.Init(ctx))

	_, err = first.Orders.CreateOrder(ctx, &models.Order{
		DeliveryType: models.DeliveryPickup,
		Items:        []models.OrderItem{{Name: "Waakye", Quantity: 1, UnitPrice: 30}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Queue.GetSyncStatus().Pending)
	require.NoError(t, first.Close())
	assert.Zero(t, backend.received())

	seedSession(t, cfg, time.Now().Add(time.Hour))
	second := newTestApp(t, cfg, WithOnline(true))
	require.Eventually(t, func() bool {
		orders := second.Orders.ListOrders(ctx)
		return len(orders) == 1 && orders[0].Order.ID == "42"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, backend.received())
}

func TestApp_RouteFallbackUsesTransactionSnapshot(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	a := newTestApp(t, testConfig(t, srv.URL), WithOnline(true))
	ctx := context.Background()

	_, err := a.Transactions.Get(ctx, true)
	require.NoError(t, err)

	a.Network.SetOnline(false)
	res := a.Routes.Resolve(ctx, "/view-transactions")
	assert.Equal(t, routing.ModeCached, res.Mode)
	assert.Contains(t, string(res.Content), "t1")

	cached, err := a.Transactions.Get(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, transactions.SourceOffline, cached.Source)
}

func TestApp_MetricsHandler(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	a := newTestApp(t, testConfig(t, srv.URL), WithOnline(true))
	_, err := a.Transactions.Get(context.Background(), true)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "adakings_cache_fetches_total"))
}

func TestApp_ExpiredSessionPausesSyncUntilLogin(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	clk := clock.NewFake(start)
	cfg := testConfig(t, srv.URL)
	seedSession(t, cfg, start.Add(-time.Minute))

	a := newTestApp(t, cfg, WithOnline(true), WithClock(clk))
	ctx := context.Background()

	local, err := a.Orders.CreateOrder(ctx, &models.Order{
		DeliveryType: models.DeliveryPickup,
		Items:        []models.OrderItem{{Name: "Banku", Quantity: 1, UnitPrice: 35}},
	})
	require.NoError(t, err)
	require.NoError(t, a.Queue.WaitIdle(ctx))

	for range 5 {
		clk.Advance(time.Minute)
		require.NoError(t, a.Queue.WaitIdle(ctx))
	}

	assert.Zero(t, backend.received())
	status := a.Queue.GetSyncStatus()
	assert.True(t, status.AwaitingLogin)
	assert.Equal(t, 1, status.Pending)
	assert.Zero(t, status.Failed)
	require.Len(t, status.Operations, 1)
	assert.Zero(t, status.Operations[0].RetryCount)

	orders := a.Orders.ListOrders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, local.Order.ID, orders[0].Order.ID)
	assert.Equal(t, models.RecordPendingSync, orders[0].SyncStatus)

	_, err = a.Auth.Login(ctx, "frontdesk", "password123")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		orders := a.Orders.ListOrders(ctx)
		return len(orders) == 1 && orders[0].Order.ID == "42"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, backend.received())
	assert.Equal(t, []string{"Bearer fresh-token"}, backend.bearers)
	assert.False(t, a.Queue.GetSyncStatus().AwaitingLogin)
}

func TestApp_ExpiredOperationFlagsOrderOnRestart(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	clk := clock.NewFake(start)
	cfg := testConfig(t, srv.URL)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	first, err := New(ctx, cfg, logger, WithOnline(false), WithClock(clk), WithoutRuntimeMetrics())
	require.NoError(t, err)
	require.NoError(t, first.Init(ctx))
	local, err := first.Orders.CreateOrder(ctx, &models.Order{
		DeliveryType: models.DeliveryPickup,
		Items:        []models.OrderItem{{Name: "Waakye", Quantity: 1, UnitPrice: 30}},
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	clk.Advance(25 * time.Hour)
	seedSession(t, cfg, start.Add(48*time.Hour))
	second := newTestApp(t, cfg, WithOnline(true), WithClock(clk))

	assert.Empty(t, second.Queue.GetSyncStatus().Operations)
	orders := second.Orders.ListOrders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, local.Order.ID, orders[0].Order.ID)
	assert.Equal(t, models.RecordSyncFailed, orders[0].SyncStatus)
	assert.NotEmpty(t, orders[0].SyncError)
	assert.Zero(t, backend.received())

	_, err = second.Orders.RetryOrder(ctx, local.Order.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		orders := second.Orders.ListOrders(ctx)
		return len(orders) == 1 && orders[0].Order.ID == "42"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, backend.received())
}
