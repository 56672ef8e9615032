package models

import (
	"encoding/json"
	"time"
)

// OperationType определяет вид отложенной мутации.
// От типа зависят политика повторов и целевой endpoint.
type OperationType string

const (
	OperationCreateOrder   OperationType = "create_order"
	OperationUpdateOrder   OperationType = "update_order"
	OperationProfileUpdate OperationType = "profile_update"
	OperationPayment       OperationType = "payment"
)

// OperationStatus состояние операции в очереди синхронизации
type OperationStatus string

const (
	OperationPending   OperationStatus = "pending"
	OperationRetrying  OperationStatus = "retrying"
	OperationCompleted OperationStatus = "completed"
	OperationFailed    OperationStatus = "failed"
)

// RequestPayload описывает HTTP запрос, который нужно выполнить на сервере.
// Для очереди это непрозрачные данные.
type RequestPayload struct {
	Headers  map[string]string `json:"headers,omitempty"`
	Endpoint string            `json:"endpoint"`
	Method   string            `json:"method"`
	Body     json.RawMessage   `json:"body,omitempty"`
}

// Operation изменение, сделанное клиентом и ждущее подтверждения сервера.
type Operation struct {
	CreatedAt     time.Time         `json:"created_at"`
	LastAttemptAt time.Time         `json:"last_attempt_at,omitempty"`
	NextAttemptAt time.Time         `json:"next_attempt_at,omitempty"`
	CompletedAt   time.Time         `json:"completed_at,omitempty"`
	FailedAt      time.Time         `json:"failed_at,omitempty"`
	Meta          map[string]string `json:"meta,omitempty"`
	ID            string            `json:"id"`
	Type          OperationType     `json:"type"`
	Status        OperationStatus   `json:"status"`
	LastError     string            `json:"last_error,omitempty"`
	Payload       RequestPayload    `json:"payload"`
	RetryCount    int               `json:"retry_count"`
	MaxRetries    int               `json:"max_retries"`
	LastStatus    int               `json:"last_status,omitempty"` // HTTP статус последней неудачной попытки
}

// Terminal сообщает, что дальнейших переходов не будет.
func (o *Operation) Terminal() bool {
	return o.Status == OperationCompleted || o.Status == OperationFailed
}

// Clone создает глубокую копию операции
func (o *Operation) Clone() *Operation {
	c := *o

	if o.Meta != nil {
		c.Meta = make(map[string]string, len(o.Meta))
		for k, v := range o.Meta {
			c.Meta[k] = v
		}
	}

	if o.Payload.Headers != nil {
		c.Payload.Headers = make(map[string]string, len(o.Payload.Headers))
		for k, v := range o.Payload.Headers {
			c.Payload.Headers[k] = v
		}
	}

	if o.Payload.Body != nil {
		c.Payload.Body = append(json.RawMessage(nil), o.Payload.Body...)
	}

	return &c
}

// Summary возвращает урезанное представление для UI: без payload и заголовков.
func (o *Operation) Summary() OperationSummary {
	ts := o.CreatedAt
	if !o.LastAttemptAt.IsZero() {
		ts = o.LastAttemptAt
	}
	return OperationSummary{
		ID:         o.ID,
		Type:       o.Type,
		Status:     o.Status,
		RetryCount: o.RetryCount,
		Timestamp:  ts,
		LastError:  o.LastError,
	}
}

// OperationSummary описание операции без payload.
type OperationSummary struct {
	Timestamp  time.Time       `json:"timestamp"`
	ID         string          `json:"id"`
	Type       OperationType   `json:"type"`
	Status     OperationStatus `json:"status"`
	LastError  string          `json:"last_error,omitempty"`
	RetryCount int             `json:"retry_count"`
}
