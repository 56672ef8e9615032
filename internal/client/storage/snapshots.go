package storage

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate moq -out snapshotstorage_mock.go . SnapshotStorage

// SnapshotStorage хранит последнюю успешно загруженную копию редко меняющихся данных.
type SnapshotStorage interface {
	// SaveSnapshot заменяет снапшот под ключом key
	SaveSnapshot(ctx context.Context, key string, snapshot *Snapshot) error

	// GetSnapshot возвращает снапшот под ключом key
	// Возвращает ErrSnapshotNotFound, если его нет
	GetSnapshot(ctx context.Context, key string) (*Snapshot, error)

	// DeleteSnapshot удаляет снапшот, без ошибки если его нет
	DeleteSnapshot(ctx context.Context, key string) error
}

// Snapshot копия данных и время ее загрузки.
type Snapshot struct {
	LastUpdated time.Time       `json:"last_updated"`
	Content     json.RawMessage `json:"content"`
}
