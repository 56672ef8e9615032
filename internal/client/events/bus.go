// Package events небольшая типизированная шина publish/subscribe, через которую
// движок синхронизации, кэш транзакций и сервис данных уведомляют слой UI.
package events

import (
	"log/slog"
	"sync"
	"time"
)

// Type идентифицирует вид события
type Type string

const (
	OperationQueued    Type = "operation-queued"
	OperationStarted   Type = "operation-started"
	OperationCompleted Type = "operation-completed"
	OperationRetrying  Type = "operation-retrying"
	OperationFailed    Type = "operation-failed"
	OperationCancelled Type = "operation-cancelled"
	OperationExpired   Type = "operation-expired"
	NetworkRestored    Type = "network-restored"
	NetworkLost        Type = "network-lost"
	SyncStarted        Type = "sync-started"
	SyncFinished       Type = "sync-finished"
	SyncPaused         Type = "sync-paused"
	SessionStarted     Type = "session-started"
	SessionEnded       Type = "session-ended"
	DataUpdated        Type = "data-updated"
	CacheCleared       Type = "cache-cleared"
	OrderSynced        Type = "order-synced"
	OrderSyncFailed    Type = "order-sync-failed"
	ProfileSynced      Type = "profile-synced"
)

// Event доставляется каждому подписчику.
type Event struct {
	Timestamp time.Time
	Payload   any
	Type      Type
}

// Handler получает события
type Handler func(Event)

// Bus рассылает события подписчикам синхронно, в порядке подписки.
// Публикующие не должны держать свои блокировки во время публикации.
type Bus struct {
	logger *slog.Logger
	subs   map[uint64]Handler
	order  []uint64
	next   uint64
	mu     sync.RWMutex
}

// NewBus создает пустую шину
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger,
		subs:   make(map[uint64]Handler),
	}
}

// Subscribe регистрирует h и возвращает функцию отписки.
// Повторный вызов отписки безопасен.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	id := b.next
	b.subs[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish доставляет событие всем текущим подписчикам. Паника обработчика
// логируется и не мешает доставке остальным.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, e)
	}
}

// Emit создает событие с меткой ts и публикует его.
func (b *Bus) Emit(t Type, ts time.Time, payload any) {
	b.Publish(Event{Type: t, Timestamp: ts, Payload: payload})
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked", "event", e.Type, "panic", r)
		}
	}()
	h(e)
}
