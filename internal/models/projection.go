package models

import (
	"encoding/json"
	"strings"
	"time"
)

// LocalIDPrefix пространство временных id оптимистичных записей.
// Серверные id никогда с него не начинаются.
const LocalIDPrefix = "local_"

// Виды записей в хранилище проекций. У каждого вида свой bucket.
const (
	RecordKindOrder   = "order"
	RecordKindProfile = "profile"
)

// ProfileRecordID единственная запись профиля текущего пользователя
const ProfileRecordID = "me"

// Статусы записей, связанные с синхронизацией. Любое другое значение это подтвержденный серверный статус.
const (
	RecordPendingSync = "pending_sync"
	RecordSyncFailed  = "sync_failed"
	RecordSynced      = "synced"
)

// LocalRecord оптимистичная, видимая клиенту копия сущности, которую сервер
// мог еще не подтвердить.
type LocalRecord struct {
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	OperationID string          `json:"operation_id,omitempty"` // операция, породившая запись
	Status      string          `json:"status"`
	SyncError   string          `json:"sync_error,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// Temporary сообщает, что у записи все еще клиентский id.
func (r *LocalRecord) Temporary() bool {
	return IsLocalID(r.ID)
}

// Unsynced сообщает, что запись отражает еще не подтвержденное изменение.
func (r *LocalRecord) Unsynced() bool {
	return r.Status == RecordPendingSync || r.Status == RecordSyncFailed
}

// LocalID выводит временный id из операции, создавшей запись.
func LocalID(operationID string) string {
	return LocalIDPrefix + operationID
}

// IsLocalID сообщает, является ли id временным клиентским.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}
