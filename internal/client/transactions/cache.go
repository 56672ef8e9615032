// Package transactions отдает транзакции сначала из API, а при недоступном
// сервере из последнего успешного снапшота.
package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/metrics"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

const (
	// SnapshotKey ключ снапшота с транзакциями
	SnapshotKey = "transactions"

	// DefaultTTL окно свежести загруженных данных
	DefaultTTL = 30 * time.Second
	// DefaultFetchTimeout ограничивает одну сетевую загрузку
	DefaultFetchTimeout = 10 * time.Second
)

// ErrNoCachedData возвращается, когда сервер недоступен и снапшота нет
var ErrNoCachedData = errors.New("no cached transaction data available")

// errOffline причина, когда загрузка даже не начиналась
var errOffline = errors.New("client is offline")

// Source откуда пришел результат
type Source string

const (
	SourceAPI     Source = "api"
	SourceOffline Source = "offline"
)

//go:generate moq -out fetcher_mock.go . Fetcher

// Fetcher загружает сырой ответ со списком транзакций.
type Fetcher interface {
	FetchTransactions(ctx context.Context) (json.RawMessage, error)
}

// Connectivity сообщает состояние сети и его изменения.
type Connectivity interface {
	IsOnline() bool
	Subscribe(fn func(online bool)) func()
}

// Result список транзакций и его происхождение
type Result struct {
	LastUpdated  time.Time            `json:"last_updated"`
	Source       Source               `json:"source"`
	Transactions []models.Transaction `json:"transactions"`
	Stale        bool                 `json:"stale"`
}

// Options зависимости кэша. Metrics может быть nil.
type Options struct {
	Fetcher      Fetcher
	Snapshots    storage.SnapshotStorage
	Network      Connectivity
	Bus          *events.Bus
	Clock        clock.Clock
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	TTL          time.Duration
	FetchTimeout time.Duration
}

// Cache кэш транзакций со сквозным чтением. Параллельные загрузки
// схлопываются в один сетевой вызов.
type Cache struct {
	fetcher   Fetcher
	snapshots storage.SnapshotStorage
	network   Connectivity
	bus       *events.Bus
	clock     clock.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger

	fresh *ttlcache.Cache[string, *Result]
	group singleflight.Group

	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.Mutex // защищает started, disposed, unsubscribe и wg.Add
	unsubscribe func()
	wg          sync.WaitGroup
	started     bool
	disposed    bool

	ttl          time.Duration
	fetchTimeout time.Duration
}

// NewCache создает кэш
func NewCache(opts Options) *Cache {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Cache{
		fetcher:   opts.Fetcher,
		snapshots: opts.Snapshots,
		network:   opts.Network,
		bus:       opts.Bus,
		clock:     opts.Clock,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		fresh: ttlcache.New(
			ttlcache.WithTTL[string, *Result](opts.TTL),
			ttlcache.WithDisableTouchOnHit[string, *Result](),
		),
		ctx:          ctx,
		cancel:       cancel,
		ttl:          opts.TTL,
		fetchTimeout: opts.FetchTimeout,
	}
}

// Init запускает вытеснение в памяти и фоновое обновление
// при каждом восстановлении связи.
func (c *Cache) Init() {
	c.mu.Lock()
	if c.started || c.disposed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.fresh.Start()
	unsubscribe := c.network.Subscribe(c.onNetworkChange)

	c.mu.Lock()
	if c.disposed {
		// Dispose успел пройти между запуском и подпиской
		c.mu.Unlock()
		unsubscribe()
		return
	}
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

func (c *Cache) onNetworkChange(online bool) {
	if !online {
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		if _, err := c.Get(c.ctx, true); err != nil {
			c.logger.Debug("Background transaction refresh failed", "error", err)
		}
	}()
}

// Dispose останавливает фоновую работу. Повторные вызовы ничего не делают.
func (c *Cache) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	started, unsubscribe := c.started, c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	c.cancel()
	c.wg.Wait()
	if started {
		c.fresh.Stop()
	}
}

// Get возвращает транзакции сначала из API. Онлайн загрузка идет всегда, кроме
// случая, когда в памяти есть данные моложе TTL и forceRefresh false. Если
// загрузка упала или связи нет, возвращается снапшот с SourceOffline;
// без снапшота ошибка оборачивает ErrNoCachedData.
func (c *Cache) Get(ctx context.Context, forceRefresh bool) (*Result, error) {
	cause := errOffline

	if c.network.IsOnline() {
		if !forceRefresh {
			if res := c.memory(); res != nil {
				c.metrics.CacheFetch("memory")
				return res, nil
			}
		}

		res, err := c.fetch(ctx)
		if err == nil {
			c.metrics.CacheFetch(string(SourceAPI))
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("Transaction fetch failed, falling back to snapshot", "error", err)
		cause = err
	}

	res, err := c.offline(ctx)
	if err != nil {
		c.metrics.CacheFetch("miss")
		return nil, fmt.Errorf("%w: %w", ErrNoCachedData, cause)
	}
	c.metrics.CacheFetch(string(SourceOffline))
	return res, nil
}

// Invalidate удаляет снапшоты в памяти и на диске
func (c *Cache) Invalidate(ctx context.Context) error {
	c.fresh.DeleteAll()
	if err := c.snapshots.DeleteSnapshot(ctx, SnapshotKey); err != nil {
		c.logger.Warn("Failed to delete transaction snapshot", "error", err)
	}
	c.bus.Emit(events.CacheCleared, c.clock.Now(), SnapshotKey)
	return nil
}

// Watch вызывает fn со свежими данными каждые interval, пока не отменен ctx.
// Первый вызов сразу и может быть отдан из памяти.
func (c *Cache) Watch(ctx context.Context, interval time.Duration, fn func(*Result, error)) {
	fn(c.Get(ctx, false))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := c.Get(ctx, true)
			if ctx.Err() != nil {
				return
			}
			fn(res, err)
		}
	}
}

func (c *Cache) memory() *Result {
	item := c.fresh.Get(SnapshotKey)
	if item == nil {
		return nil
	}
	res := item.Value()
	// ttlcache живет по системным часам, возраст проверяем по нашим
	if c.clock.Now().Sub(res.LastUpdated) >= c.ttl {
		return nil
	}
	return res.clone()
}

// fetch выполняет запрос к API; параллельные вызовы разделяют один запрос
func (c *Cache) fetch(ctx context.Context) (*Result, error) {
	ch := c.group.DoChan(SnapshotKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(c.ctx, c.fetchTimeout)
		defer cancel()

		raw, err := c.fetcher.FetchTransactions(fetchCtx)
		if err != nil {
			return nil, err
		}

		txs := Normalize(raw)
		now := c.clock.Now()
		res := &Result{
			Transactions: txs,
			Source:       SourceAPI,
			LastUpdated:  now,
		}

		// снапшот пишется только после успешной загрузки
		c.persist(fetchCtx, res)
		c.fresh.Set(SnapshotKey, res, ttlcache.DefaultTTL)
		c.bus.Emit(events.DataUpdated, now, map[string]any{"dataset": SnapshotKey, "count": len(txs)})

		return res, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result).clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) persist(ctx context.Context, res *Result) {
	content, err := json.Marshal(res.Transactions)
	if err != nil {
		c.logger.Error("Failed to encode transaction snapshot", "error", err)
		return
	}
	snapshot := &storage.Snapshot{LastUpdated: res.LastUpdated, Content: content}
	if err := c.snapshots.SaveSnapshot(ctx, SnapshotKey, snapshot); err != nil {
		c.logger.Warn("Failed to save transaction snapshot", "error", err)
	}
}

func (c *Cache) offline(ctx context.Context) (*Result, error) {
	snapshot, err := c.snapshots.GetSnapshot(ctx, SnapshotKey)
	if err != nil {
		if !errors.Is(err, storage.ErrSnapshotNotFound) {
			c.logger.Warn("Failed to read transaction snapshot", "error", err)
		}
		return nil, err
	}

	var txs []models.Transaction
	if err := json.Unmarshal(snapshot.Content, &txs); err != nil {
		c.logger.Warn("Transaction snapshot is corrupted", "error", err)
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	return &Result{
		Transactions: txs,
		Source:       SourceOffline,
		LastUpdated:  snapshot.LastUpdated,
		Stale:        c.clock.Now().Sub(snapshot.LastUpdated) >= c.ttl,
	}, nil
}

func (r *Result) clone() *Result {
	cp := *r
	cp.Transactions = slices.Clone(r.Transactions)
	if cp.Transactions == nil {
		cp.Transactions = []models.Transaction{}
	}
	return &cp
}
