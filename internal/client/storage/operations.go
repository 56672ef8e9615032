package storage

import (
	"context"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

//go:generate moq -out operationstorage_mock.go . OperationStorage

// OperationStorage сохраняет очередь синхронизации, чтобы работа переживала перезапуски.
type OperationStorage interface {
	// SaveQueue перезаписывает предыдущий снапшот
	SaveQueue(ctx context.Context, snapshot *QueueSnapshot) error

	// LoadQueue возвращает последний снапшот
	// Возвращает ErrQueueNotFound, если еще ничего не сохранено
	LoadQueue(ctx context.Context) (*QueueSnapshot, error)

	// ClearQueue удаляет снапшот
	ClearQueue(ctx context.Context) error
}

// QueueSnapshot сохраняемая форма состояния координатора.
type QueueSnapshot struct {
	SavedAt    time.Time           `json:"saved_at"`
	Operations []*models.Operation `json:"operations"`
	Queue      []string            `json:"queue"` // FIFO порядок активной очереди
}
