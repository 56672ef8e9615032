package storage

import "errors"

// Общие ошибки клиентского хранилища
var (
	// ErrAuthNotFound данных авторизации нет
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrQueueNotFound снапшот очереди операций не сохранялся
	ErrQueueNotFound = errors.New("operation queue snapshot not found")

	// ErrRecordNotFound локальная запись проекции не найдена
	ErrRecordNotFound = errors.New("local record not found")

	// ErrSnapshotNotFound кэшированного снапшота данных нет
	ErrSnapshotNotFound = errors.New("cache snapshot not found")

	// ErrStorageClosed хранилище закрыто
	ErrStorageClosed = errors.New("storage is closed")
)
