// Package projection хранит оптимистичные локальные копии заказов и профиля,
// чтобы UI видел изменение до подтверждения сервером.
package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// ErrInvalidRecord возвращается из Put для записей, нарушающих пространство id
var ErrInvalidRecord = errors.New("invalid local record")

// Store единственный писатель локальных проекций.
type Store struct {
	storage storage.ProjectionStorage
	clock   clock.Clock
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewStore создает хранилище проекций поверх st
func NewStore(st storage.ProjectionStorage, clk clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		storage: st,
		clock:   clk,
		logger:  logger,
	}
}

// NewRecord кодирует data в запись заданного вида
func NewRecord(kind, id, operationID, status string, data any) (*models.LocalRecord, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", kind, err)
	}
	return &models.LocalRecord{
		ID:          id,
		Kind:        kind,
		OperationID: operationID,
		Status:      status,
		Data:        raw,
	}, nil
}

// Decode разбирает payload записи в T
func Decode[T any](rec *models.LocalRecord) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s record %s: %w", rec.Kind, rec.ID, err)
	}
	return v, nil
}

// Put вставляет или обновляет запись по виду и id.
// Временный id должен совпадать с локальным id породившей операции.
func (s *Store) Put(ctx context.Context, rec *models.LocalRecord) error {
	if err := validate(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putLocked(ctx, rec)
}

// Get возвращает запись или storage.ErrRecordNotFound
func (s *Store) Get(ctx context.Context, kind, id string) (*models.LocalRecord, error) {
	rec, err := s.storage.GetRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List возвращает все записи вида, новые первыми. Ошибки хранилища дают пустой список.
func (s *Store) List(ctx context.Context, kind string) []*models.LocalRecord {
	records, err := s.storage.ListRecords(ctx, kind)
	if err != nil {
		s.logger.Warn("Failed to list local records", "kind", kind, "error", err)
		return []*models.LocalRecord{}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records
}

// Remove удаляет запись. Удаление отсутствующей записи не ошибка.
func (s *Store) Remove(ctx context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, kind, id)
}

// FindByOperation возвращает запись, созданную операцией
func (s *Store) FindByOperation(ctx context.Context, kind, operationID string) (*models.LocalRecord, error) {
	for _, rec := range s.List(ctx, kind) {
		if rec.OperationID == operationID {
			return rec, nil
		}
	}
	return nil, storage.ErrRecordNotFound
}

// Replace заменяет запись tempID подтвержденной сервером записью.
// Подтвержденная запись пишется первой, поэтому сущность не пропадает.
func (s *Store) Replace(ctx context.Context, tempID string, confirmed *models.LocalRecord) error {
	if confirmed.Temporary() {
		return fmt.Errorf("%w: confirmed record %s carries a temporary id", ErrInvalidRecord, confirmed.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, err := s.storage.GetRecord(ctx, confirmed.Kind, tempID); err == nil && confirmed.CreatedAt.IsZero() {
		confirmed.CreatedAt = prev.CreatedAt
	}

	if err := s.putLocked(ctx, confirmed); err != nil {
		return err
	}
	if tempID == confirmed.ID {
		return nil
	}
	return s.removeLocked(ctx, confirmed.Kind, tempID)
}

// SetStatus обновляет статус синхронизации записи и сохраняет причину ошибки, если она есть
func (s *Store) SetStatus(ctx context.Context, kind, id, status, syncErr string) (*models.LocalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.storage.GetRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	rec.Status = status
	rec.SyncError = syncErr
	if err := s.putLocked(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) putLocked(ctx context.Context, rec *models.LocalRecord) error {
	now := s.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	if err := s.storage.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("failed to save %s record %s: %w", rec.Kind, rec.ID, err)
	}
	return nil
}

func (s *Store) removeLocked(ctx context.Context, kind, id string) error {
	err := s.storage.DeleteRecord(ctx, kind, id)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return fmt.Errorf("failed to delete %s record %s: %w", kind, id, err)
	}
	return nil
}

func validate(rec *models.LocalRecord) error {
	if rec == nil || rec.Kind == "" || rec.ID == "" {
		return fmt.Errorf("%w: kind and id are required", ErrInvalidRecord)
	}
	if rec.Temporary() && (rec.OperationID == "" || rec.ID != models.LocalID(rec.OperationID)) {
		return fmt.Errorf("%w: temporary id %s must derive from its operation", ErrInvalidRecord, rec.ID)
	}
	return nil
}
