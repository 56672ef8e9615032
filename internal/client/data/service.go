// Package data применяет изменения заказов, профиля и платежей оптимистично:
// локальная запись пишется сразу, а изменение ставится в очередь на сервер.
package data

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/projection"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// Ключи meta, связывающие операцию с ее локальной записью
const (
	metaRecordKind = "record_kind"
	metaRecordID   = "record_id"
)

var (
	// ErrOrderNotFound возвращается для неизвестного локального заказа
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotSynced возвращается, когда нужен серверный id, а заказ
	// еще ждет своей операции создания
	ErrOrderNotSynced = errors.New("order has not been confirmed by the server yet")

	// ErrNotFailed возвращается из RetryOrder для заказов без ошибки синхронизации
	ErrNotFailed = errors.New("order sync has not failed")

	// ErrAlreadySynced возвращается из DiscardOrder для подтвержденных заказов
	ErrAlreadySynced = errors.New("order is already synced")
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для клиентского data сервиса
type Service interface {
	CreateOrder(ctx context.Context, order *models.Order) (*LocalOrder, error)
	UpdateOrder(ctx context.Context, id string, update OrderUpdate) (*LocalOrder, error)
	ListOrders(ctx context.Context) []*LocalOrder
	DiscardOrder(ctx context.Context, id string) error
	RetryOrder(ctx context.Context, id string) (*LocalOrder, error)

	UpdateProfile(ctx context.Context, profile models.Profile) (*LocalProfile, error)
	GetProfile(ctx context.Context) (*LocalProfile, error)

	RecordPayment(ctx context.Context, payment models.Payment) (string, error)
}

//go:generate moq -out queue_mock.go . Queue

// Queue часть координатора синхронизации, нужная сервису.
type Queue interface {
	Enqueue(opType models.OperationType, payload models.RequestPayload, opts syncqueue.EnqueueOptions) string
	CancelOperation(id string) bool
	Operation(id string) (*models.Operation, bool)
}

// OrderUpdate частичное изменение заказа; nil поля не меняются
type OrderUpdate struct {
	Status *string
	Notes  *string
	Items  []models.OrderItem
}

// LocalOrder заказ в том виде, в каком его сейчас видит клиент
type LocalOrder struct {
	UpdatedAt   time.Time    `json:"updated_at"`
	Order       models.Order `json:"order"`
	SyncStatus  string       `json:"sync_status"`
	SyncError   string       `json:"sync_error,omitempty"`
	OperationID string       `json:"operation_id,omitempty"`
	Temporary   bool         `json:"temporary"`
}

// LocalProfile локальный профиль и состояние его синхронизации
type LocalProfile struct {
	UpdatedAt   time.Time      `json:"updated_at"`
	Profile     models.Profile `json:"profile"`
	SyncStatus  string         `json:"sync_status"`
	SyncError   string         `json:"sync_error,omitempty"`
	OperationID string         `json:"operation_id,omitempty"`
}

// OrderSynced payload события order-synced
type OrderSynced struct {
	Order       models.Order
	TempID      string
	OperationID string
}

// OrderSyncFailed payload события order-sync-failed
type OrderSyncFailed struct {
	OrderID     string
	OperationID string
	Error       string
}

// ProfileSynced payload события profile-synced
type ProfileSynced struct {
	Profile     models.Profile
	OperationID string
}

// OrderService реализует Service поверх очереди синхронизации и хранилища проекций
type OrderService struct {
	queue   Queue
	records *projection.Store
	bus     *events.Bus
	clock   clock.Clock
	logger  *slog.Logger

	unsubscribe func()
	mu          sync.Mutex
}

// Проверка на этапе компиляции, что OrderService реализует Service
var _ Service = (*OrderService)(nil)

// NewOrderService создает сервис. Init запускает сверку записей.
func NewOrderService(queue Queue, records *projection.Store, bus *events.Bus, clk clock.Clock, logger *slog.Logger) *OrderService {
	if clk == nil {
		clk = clock.New()
	}
	return &OrderService{
		queue:   queue,
		records: records,
		bus:     bus,
		clock:   clk,
		logger:  logger,
	}
}

// Init подписывается на результаты операций
func (s *OrderService) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe == nil {
		s.unsubscribe = s.bus.Subscribe(s.handle)
	}
}

// Dispose останавливает сверку
func (s *OrderService) Dispose() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func recordMeta(kind, id string) map[string]string {
	return map[string]string{metaRecordKind: kind, metaRecordID: id}
}
