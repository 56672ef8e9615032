package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// SaveRecord сохраняет или заменяет локальную запись в bucket ее вида
func (s *Storage) SaveRecord(ctx context.Context, record *models.LocalRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	if record.Kind == "" {
		return fmt.Errorf("record kind is required")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal local record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(projectionBucket(record.Kind))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		if err := bucket.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRecord получает локальную запись по виду и ID
func (s *Storage) GetRecord(ctx context.Context, kind, id string) (*models.LocalRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var record *models.LocalRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(projectionBucket(kind))
		if bucket == nil {
			return storage.ErrRecordNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record = &models.LocalRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords возвращает все записи вида в порядке ключей
func (s *Storage) ListRecords(ctx context.Context, kind string) ([]*models.LocalRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	records := []*models.LocalRecord{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(projectionBucket(kind))
		if bucket == nil {
			// Нет bucket - возвращаем пустой массив
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var record models.LocalRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, &record)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// DeleteRecord удаляет локальную запись
func (s *Storage) DeleteRecord(ctx context.Context, kind, id string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(projectionBucket(kind))
		if bucket == nil || bucket.Get([]byte(id)) == nil {
			return storage.ErrRecordNotFound
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		return nil
	})
}
