// Package app собирает движок офлайн синхронизации из конфигурации и управляет
// его жизненным циклом.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/api"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/auth"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/data"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/metrics"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/network"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/projection"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/retry"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/routing"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage/boltdb"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/transactions"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/config"
)

// App содержит все компоненты клиента. Создается через New, запускается Init
// и освобождается Close.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Clock    clock.Clock
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Storage      *boltdb.Storage
	API          *api.Client
	Auth         *auth.AuthService
	Network      *network.Monitor
	Bus          *events.Bus
	Queue        *syncqueue.Coordinator
	Records      *projection.Store
	Orders       *data.OrderService
	Transactions *transactions.Cache
	Routes       *routing.Resolver

	healthCheck func(ctx context.Context) error
	initialized bool
}

// Option настраивает New
type Option func(*options)

type options struct {
	clock   clock.Clock
	doer    api.Doer
	online  *bool
	metrics bool
}

// WithClock подменяет системные часы
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

// WithDoer подменяет HTTP клиент для запросов к серверу
func WithDoer(d api.Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithOnline задает начальное состояние сети вместо проверки сервера
func WithOnline(online bool) Option {
	return func(o *options) { o.online = &online }
}

// WithoutRuntimeMetrics отключает go и process коллекторы
func WithoutRuntimeMetrics() Option {
	return func(o *options) { o.metrics = false }
}

// New открывает локальное хранилище и связывает компоненты. До Init ничего не работает.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	o := options{clock: clock.New(), metrics: true}
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	if o.metrics {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(registry)

	routes, err := routing.LoadRegistry(cfg.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load route fallbacks: %w", err)
	}

	st, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	doer := o.doer
	if doer == nil {
		doer = api.NewHTTPClient(m.InstrumentTransport(nil))
	}
	base := api.NewClient(cfg.ServerURL, doer)

	bus := events.NewBus(logger)
	authSvc := auth.NewAuthService(base, st, bus, o.clock, logger)
	client := base.WithTokenSource(authSvc)

	// проверка связи не зависит от состояния сессии
	var online bool
	if o.online != nil {
		online = *o.online
	} else {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.Network.CheckTimeout)
		online = base.Health(checkCtx) == nil
		cancel()
	}

	monitor := network.NewMonitor(online, logger)

	coordinator := syncqueue.NewCoordinator(syncqueue.Options{
		Store:         syncqueue.NewStore(st, o.clock, cfg.Sync.SnapshotMaxAge, logger),
		Executor:      client,
		Retry:         retry.NewEngine(cfg.RetryPolicies()),
		Network:       monitor,
		Bus:           bus,
		Clock:         o.clock,
		Metrics:       m,
		Logger:        logger,
		ExecTimeout:   cfg.Sync.ExecTimeout,
		SweepInterval: cfg.Sync.SweepInterval,
	})

	records := projection.NewStore(st, o.clock, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Clock:    o.clock,
		Registry: registry,
		Metrics:  m,
		Storage:  st,
		API:      client,
		Auth:     authSvc,
		Network:  monitor,
		Bus:      bus,
		Queue:    coordinator,
		Records:  records,
		Orders:   data.NewOrderService(coordinator, records, bus, o.clock, logger),
		Transactions: transactions.NewCache(transactions.Options{
			Fetcher:      client,
			Snapshots:    st,
			Network:      monitor,
			Bus:          bus,
			Clock:        o.clock,
			Metrics:      m,
			Logger:       logger,
			TTL:          cfg.Transactions.TTL,
			FetchTimeout: cfg.Transactions.FetchTimeout,
		}),
		Routes:      routing.NewResolver(routes, st, monitor, o.clock, logger),
		healthCheck: base.Health,
	}, nil
}

// Init запускает сверку, кэш транзакций и очередь синхронизации.
// Обработчики записей подписываются до восстановления очереди, чтобы не пропустить исход.
func (a *App) Init(ctx context.Context) error {
	if a.initialized {
		return nil
	}
	a.Orders.Init()
	a.Transactions.Init()
	if err := a.Queue.Init(ctx); err != nil {
		a.Transactions.Dispose()
		a.Orders.Dispose()
		return err
	}
	a.initialized = true
	return nil
}

// Settle ждет текущий разбор очереди, чтобы короткая команда не вышла
// посреди запроса.
func (a *App) Settle(ctx context.Context, timeout time.Duration) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := a.Queue.WaitIdle(waitCtx); err != nil {
		a.Logger.Debug("Sync queue still busy on exit", "error", err)
	}
}

// Close останавливает все компоненты и закрывает базу
func (a *App) Close() error {
	if a.initialized {
		a.Queue.Dispose()
		a.Transactions.Dispose()
		a.Orders.Dispose()
		a.initialized = false
	}
	return a.Storage.Close()
}

// Run держит движок запущенным: проверяет связь, периодически разбирает очередь
// и отдает /metrics, если он настроен. Возвращается по отмене ctx.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Network.Run(ctx, a.healthCheck, a.Config.Network.CheckInterval)
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(a.Config.Sync.DrainInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				a.Queue.Drain()
			}
		}
	})

	if a.Config.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              a.Config.MetricsAddr,
			Handler:           a.MetricsHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			a.Logger.Info("Serving metrics", "addr", a.Config.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// MetricsHandler отдает реестр метрик приложения
func (a *App) MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry}))
	return mux
}
