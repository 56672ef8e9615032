package syncqueue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// DefaultSnapshotMaxAge возраст, после которого сохраненные операции отбрасываются
const DefaultSnapshotMaxAge = 24 * time.Hour

// Store хранит незавершенные операции. Ошибки хранилища логируются и
// считаются "ничего не сохранено", наружу они не уходят.
type Store struct {
	storage storage.OperationStorage
	clock   clock.Clock
	logger  *slog.Logger
	maxAge  time.Duration
}

// NewStore создает store. maxAge <= 0 означает DefaultSnapshotMaxAge.
func NewStore(st storage.OperationStorage, clk clock.Clock, maxAge time.Duration, logger *slog.Logger) *Store {
	if maxAge <= 0 {
		maxAge = DefaultSnapshotMaxAge
	}
	return &Store{
		storage: st,
		clock:   clk,
		logger:  logger,
		maxAge:  maxAge,
	}
}

// Save перезаписывает снапшот операциями и FIFO порядком активной очереди
func (s *Store) Save(ctx context.Context, ops []*models.Operation, queue []string) {
	snapshot := &storage.QueueSnapshot{
		SavedAt:    s.clock.Now(),
		Operations: ops,
		Queue:      queue,
	}
	if err := s.storage.SaveQueue(ctx, snapshot); err != nil {
		s.logger.Error("Failed to persist sync queue", "operations", len(ops), "error", err)
	}
}

// Load возвращает сохраненные операции и порядок очереди.
// Операции старше maxAge отбрасываются; снапшот, сохраненный раньше
// чем maxAge назад, отбрасывается целиком.
func (s *Store) Load(ctx context.Context) ([]*models.Operation, []string) {
	ops, queue, _ := s.Restore(ctx)
	return ops, queue
}

// Restore работает как Load, но дополнительно возвращает незавершенные
// операции, отброшенные по возрасту, чтобы их владельцы узнали, что они не уйдут.
// Уже упавшие операции повторно не сообщаются.
func (s *Store) Restore(ctx context.Context) (ops []*models.Operation, queue []string, expired []*models.Operation) {
	snapshot, err := s.storage.LoadQueue(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrQueueNotFound) {
			s.logger.Debug("No persisted sync queue")
		} else {
			s.logger.Warn("Failed to load persisted sync queue, starting empty", "error", err)
		}
		return nil, nil, nil
	}

	now := s.clock.Now()
	if now.Sub(snapshot.SavedAt) > s.maxAge {
		s.logger.Info("Discarding stale sync queue snapshot",
			"saved_at", snapshot.SavedAt,
			"operations", len(snapshot.Operations))
		s.Clear(ctx)
		for _, op := range snapshot.Operations {
			if unfinished(op) {
				expired = append(expired, op)
			}
		}
		return nil, nil, expired
	}

	ops = make([]*models.Operation, 0, len(snapshot.Operations))
	kept := make(map[string]struct{}, len(snapshot.Operations))
	for _, op := range snapshot.Operations {
		if op == nil || op.ID == "" || op.Status == models.OperationCompleted {
			continue
		}
		if now.Sub(op.CreatedAt) > s.maxAge {
			s.logger.Info("Dropping expired operation", "operation_id", op.ID, "type", op.Type, "created_at", op.CreatedAt)
			if unfinished(op) {
				expired = append(expired, op)
			}
			continue
		}
		ops = append(ops, op)
		kept[op.ID] = struct{}{}
	}

	queue = make([]string, 0, len(snapshot.Queue))
	for _, id := range snapshot.Queue {
		if _, ok := kept[id]; ok {
			queue = append(queue, id)
		}
	}

	return ops, queue, expired
}

// unfinished: операция еще ждала отправки
func unfinished(op *models.Operation) bool {
	return op != nil && op.ID != "" &&
		(op.Status == models.OperationPending || op.Status == models.OperationRetrying)
}

// Clear удаляет сохраненный снапшот
func (s *Store) Clear(ctx context.Context) {
	if err := s.storage.ClearQueue(ctx); err != nil {
		s.logger.Warn("Failed to clear persisted sync queue", "error", err)
	}
}
