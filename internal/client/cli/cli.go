// Package cli реализует консольный клиент персонала поверх движка
// офлайн синхронизации.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/auth"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/data"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/iocli"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/routing"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/transactions"
)

//go:generate moq -out syncqueue_mock.go . SyncQueue
//go:generate moq -out transactionsource_mock.go . TransactionSource
//go:generate moq -out routeresolver_mock.go . RouteResolver

// SyncQueue часть координатора синхронизации, которой управляет CLI
type SyncQueue interface {
	GetSyncStatus() syncqueue.SyncStatus
	ForceSyncAll(ctx context.Context) error
	CancelOperation(id string) bool
}

// TransactionSource отдает транзакции сначала из API, с офлайн запасным вариантом
type TransactionSource interface {
	Get(ctx context.Context, forceRefresh bool) (*transactions.Result, error)
	Invalidate(ctx context.Context) error
}

// RouteResolver описывает, что показывает экран без сети
type RouteResolver interface {
	Resolve(ctx context.Context, p string) routing.Resolution
}

// Cli выполняет команды поверх движка синхронизации
type Cli struct {
	io           iocli.IO
	authService  auth.Service
	dataService  data.Service
	syncQueue    SyncQueue
	transactions TransactionSource
	routes       RouteResolver
	online       func() bool
	now          func() time.Time
	jsonOutput   bool
}

// Deps перечисляет сервисы, нужные Cli
type Deps struct {
	IO           iocli.IO
	Auth         auth.Service
	Data         data.Service
	Queue        SyncQueue
	Transactions TransactionSource
	Routes       RouteResolver
	Online       func() bool
	Now          func() time.Time
}

// New создает Cli
func New(d Deps) *Cli {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Online == nil {
		d.Online = func() bool { return true }
	}
	return &Cli{
		io:           d.IO,
		authService:  d.Auth,
		dataService:  d.Data,
		syncQueue:    d.Queue,
		transactions: d.Transactions,
		routes:       d.Routes,
		online:       d.Online,
		now:          d.Now,
	}
}

// SetJSON переключает вывод на JSON с отступами
func (c *Cli) SetJSON(on bool) {
	c.jsonOutput = on
}

// printJSON пишет значение в виде JSON
func (c *Cli) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	c.io.Println(string(b))
	return nil
}

func (c *Cli) connectivity() string {
	if c.online() {
		return "online"
	}
	return "offline"
}

func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
