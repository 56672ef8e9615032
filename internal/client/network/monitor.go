// Package network следит за доступностью сервера и уведомляет подписчиков о переходах.
package network

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Monitor хранит текущее состояние сети и оповещает подписчиков о переходах
type Monitor struct {
	logger *slog.Logger
	subs   map[uint64]func(online bool)
	next   uint64
	online bool
	mu     sync.RWMutex
}

// NewMonitor создает монитор с заданным начальным состоянием
func NewMonitor(initialOnline bool, logger *slog.Logger) *Monitor {
	return &Monitor{
		logger: logger,
		subs:   make(map[uint64]func(bool)),
		online: initialOnline,
	}
}

// IsOnline возвращает последнее известное состояние сети
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SetOnline записывает новое состояние. Подписчики уведомляются только при переходах.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	handlers := make([]func(bool), 0, len(m.subs))
	for _, h := range m.subs {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()

	if online {
		m.logger.Info("Network connection restored")
	} else {
		m.logger.Warn("Network connection lost")
	}

	for _, h := range handlers {
		h(online)
	}
}

// Subscribe регистрирует fn на изменения состояния и возвращает функцию отписки.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	id := m.next
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Run проверяет связь каждые interval, пока не отменен ctx.
// nil ошибка проверки означает онлайн.
func (m *Monitor) Run(ctx context.Context, check func(ctx context.Context) error, interval time.Duration) {
	poll := func() {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		err := check(checkCtx)
		if err != nil && ctx.Err() != nil {
			return
		}
		if err != nil {
			m.logger.Debug("Connectivity check failed", "error", err)
		}
		m.SetOnline(err == nil)
	}

	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
