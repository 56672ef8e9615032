package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
)

var queueKey = []byte("pending_operations")

// SaveQueue перезаписывает снапшот очереди операций
func (s *Storage) SaveQueue(ctx context.Context, snapshot *storage.QueueSnapshot) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal queue snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketQueue)
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		if err := bucket.Put(queueKey, data); err != nil {
			return fmt.Errorf("failed to save queue snapshot: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// LoadQueue возвращает последний сохраненный снапшот
func (s *Storage) LoadQueue(ctx context.Context) (*storage.QueueSnapshot, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *storage.QueueSnapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return storage.ErrQueueNotFound
		}

		data := bucket.Get(queueKey)
		if data == nil {
			return storage.ErrQueueNotFound
		}

		snapshot = &storage.QueueSnapshot{}
		if err := json.Unmarshal(data, snapshot); err != nil {
			return fmt.Errorf("failed to unmarshal queue snapshot: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ClearQueue удаляет снапшот
func (s *Storage) ClearQueue(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket == nil {
			return nil
		}
		if err := bucket.Delete(queueKey); err != nil {
			return fmt.Errorf("failed to delete queue snapshot: %w", err)
		}
		return nil
	})
}
