package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
)

var (
	// Имена bucket в BoltDB
	bucketAuth      = []byte("auth")
	bucketQueue     = []byte("sync_queue")
	bucketSnapshots = []byte("snapshots")

	// projectionBucketPrefix + kind: отдельный bucket на каждый тип локальных записей
	projectionBucketPrefix = "projection_"
)

// Проверки на этапе компиляции
var (
	_ storage.AuthStorage       = (*Storage)(nil)
	_ storage.OperationStorage  = (*Storage)(nil)
	_ storage.ProjectionStorage = (*Storage)(nil)
	_ storage.SnapshotStorage   = (*Storage)(nil)
)

// Storage реализация клиентского хранилища на BoltDB
type Storage struct {
	db *bbolt.DB
}

// New создает хранилище BoltDB
// dbPath путь к файлу базы BoltDB
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close закрывает базу. Повторный вызов безопасен.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAuth, bucketQueue, bucketSnapshots} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func projectionBucket(kind string) []byte {
	return []byte(projectionBucketPrefix + kind)
}
