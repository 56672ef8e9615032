package storage

import (
	"context"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

//go:generate moq -out projectionstorage_mock.go . ProjectionStorage

// ProjectionStorage хранит оптимистичные локальные записи, по пространству на вид записи.
type ProjectionStorage interface {
	// SaveRecord сохраняет или заменяет запись по ID
	SaveRecord(ctx context.Context, record *models.LocalRecord) error

	// GetRecord получает запись
	// Возвращает ErrRecordNotFound, если записи нет
	GetRecord(ctx context.Context, kind, id string) (*models.LocalRecord, error)

	// ListRecords возвращает все записи вида
	ListRecords(ctx context.Context, kind string) ([]*models.LocalRecord, error)

	// DeleteRecord удаляет запись
	// Возвращает ErrRecordNotFound, если записи нет
	DeleteRecord(ctx context.Context, kind, id string) error
}
