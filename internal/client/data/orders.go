package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/projection"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

// CreateOrder сохраняет заказ под временным id и ставит его создание в очередь.
// Возвращенный заказ сразу виден в ListOrders.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*LocalOrder, error) {
	if order == nil {
		return nil, fmt.Errorf("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	// id операции выделяем заранее: из него выводится временный id записи
	opID := uuid.NewString()
	tempID := models.LocalID(opID)

	local := *order
	local.ID = tempID
	local.Items = append([]models.OrderItem(nil), order.Items...)
	local.Total = local.CalculateTotal()
	if local.Status == "" {
		local.Status = models.OrderStatusPending
	}
	local.CreatedAt = s.clock.Now()
	local.UpdatedAt = local.CreatedAt

	payload, err := jsonPayload(http.MethodPost, api.PathOrders, api.CreateOrderRequest{
		CustomerName:     local.CustomerName,
		CustomerPhone:    local.CustomerPhone,
		DeliveryType:     local.DeliveryType,
		DeliveryLocation: local.DeliveryLocation,
		Notes:            local.Notes,
		Items:            local.Items,
	})
	if err != nil {
		return nil, err
	}

	rec, err := projection.NewRecord(models.RecordKindOrder, tempID, opID, models.RecordPendingSync, local)
	if err != nil {
		return nil, err
	}
	if err := s.records.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store local order: %w", err)
	}

	s.queue.Enqueue(models.OperationCreateOrder, payload, syncqueue.EnqueueOptions{
		ID:   opID,
		Meta: recordMeta(models.RecordKindOrder, tempID),
	})

	s.logger.Info("Order queued", "order_id", tempID, "operation_id", opID, "items", len(local.Items))
	return toLocalOrder(rec, local), nil
}

// UpdateOrder применяет изменение локально и ставит его в очередь для подтвержденного заказа
func (s *OrderService) UpdateOrder(ctx context.Context, id string, update OrderUpdate) (*LocalOrder, error) {
	rec, order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Temporary() {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotSynced, id)
	}

	req := api.UpdateOrderRequest{Status: update.Status, Notes: update.Notes, Items: update.Items}
	if update.Status != nil {
		order.Status = *update.Status
	}
	if update.Notes != nil {
		order.Notes = *update.Notes
	}
	if update.Items != nil {
		order.Items = append([]models.OrderItem(nil), update.Items...)
		order.Total = order.CalculateTotal()
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	order.UpdatedAt = s.clock.Now()

	payload, err := jsonPayload(http.MethodPatch, api.OrderPath(id), req)
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	updated, err := projection.NewRecord(models.RecordKindOrder, id, opID, models.RecordPendingSync, order)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = rec.CreatedAt
	if err := s.records.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to store local order: %w", err)
	}

	s.queue.Enqueue(models.OperationUpdateOrder, payload, syncqueue.EnqueueOptions{
		ID:   opID,
		Meta: recordMeta(models.RecordKindOrder, id),
	})

	s.logger.Info("Order update queued", "order_id", id, "operation_id", opID)
	return toLocalOrder(updated, order), nil
}

// ListOrders возвращает локальные заказы, новые первыми
func (s *OrderService) ListOrders(ctx context.Context) []*LocalOrder {
	records := s.records.List(ctx, models.RecordKindOrder)
	orders := make([]*LocalOrder, 0, len(records))
	for _, rec := range records {
		order, err := projection.Decode[models.Order](rec)
		if err != nil {
			s.logger.Warn("Skipping unreadable local order", "order_id", rec.ID, "error", err)
			continue
		}
		orders = append(orders, toLocalOrder(rec, order))
	}
	return orders
}

// DiscardOrder отменяет ожидающую операцию несинхронизированного заказа и удаляет
// локальную запись. Подтвержденные сервером заказы удалить нельзя.
func (s *OrderService) DiscardOrder(ctx context.Context, id string) error {
	rec, _, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if !rec.Unsynced() {
		return fmt.Errorf("%w: %s", ErrAlreadySynced, id)
	}

	if rec.OperationID != "" {
		s.queue.CancelOperation(rec.OperationID)
	}
	if err := s.records.Remove(ctx, models.RecordKindOrder, id); err != nil {
		return fmt.Errorf("failed to discard order: %w", err)
	}

	s.logger.Info("Order discarded", "order_id", id, "operation_id", rec.OperationID)
	return nil
}

// RetryOrder заново ставит в очередь изменение заказа, синхронизация которого упала.
// Временный заказ получает новый временный id от новой операции.
func (s *OrderService) RetryOrder(ctx context.Context, id string) (*LocalOrder, error) {
	rec, order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.RecordSyncFailed {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotFailed, id, rec.Status)
	}

	opType := models.OperationUpdateOrder
	var payload models.RequestPayload
	if old, ok := s.queue.Operation(rec.OperationID); ok {
		opType = old.Type
		payload = old.Payload
	} else if rec.Temporary() {
		// исходная операция уже удалена: собираем запрос заново
		opType = models.OperationCreateOrder
		payload, err = jsonPayload(http.MethodPost, api.PathOrders, api.CreateOrderRequest{
			CustomerName:     order.CustomerName,
			CustomerPhone:    order.CustomerPhone,
			DeliveryType:     order.DeliveryType,
			DeliveryLocation: order.DeliveryLocation,
			Notes:            order.Notes,
			Items:            order.Items,
		})
		if err != nil {
			return nil, err
		}
	} else {
		payload, err = jsonPayload(http.MethodPatch, api.OrderPath(id), api.UpdateOrderRequest{
			Status: &order.Status,
			Notes:  &order.Notes,
			Items:  order.Items,
		})
		if err != nil {
			return nil, err
		}
	}

	if rec.OperationID != "" {
		s.queue.CancelOperation(rec.OperationID)
	}

	opID := uuid.NewString()
	newID := id
	if rec.Temporary() {
		newID = models.LocalID(opID)
		order.ID = newID
	}

	retried, err := projection.NewRecord(models.RecordKindOrder, newID, opID, models.RecordPendingSync, order)
	if err != nil {
		return nil, err
	}
	retried.CreatedAt = rec.CreatedAt
	if err := s.records.Put(ctx, retried); err != nil {
		return nil, fmt.Errorf("failed to store local order: %w", err)
	}
	if newID != id {
		if err := s.records.Remove(ctx, models.RecordKindOrder, id); err != nil {
			s.logger.Warn("Failed to remove superseded local order", "order_id", id, "error", err)
		}
	}

	s.queue.Enqueue(opType, payload, syncqueue.EnqueueOptions{
		ID:   opID,
		Meta: recordMeta(models.RecordKindOrder, newID),
	})

	s.logger.Info("Order sync retried", "order_id", newID, "previous_id", id, "operation_id", opID)
	return toLocalOrder(retried, order), nil
}

func (s *OrderService) getOrder(ctx context.Context, id string) (*models.LocalRecord, models.Order, error) {
	rec, err := s.records.Get(ctx, models.RecordKindOrder, id)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return nil, models.Order{}, fmt.Errorf("failed to load order: %w", err)
	}
	order, err := projection.Decode[models.Order](rec)
	if err != nil {
		return nil, models.Order{}, err
	}
	return rec, order, nil
}

func toLocalOrder(rec *models.LocalRecord, order models.Order) *LocalOrder {
	return &LocalOrder{
		Order:       order,
		SyncStatus:  rec.Status,
		SyncError:   rec.SyncError,
		OperationID: rec.OperationID,
		Temporary:   rec.Temporary(),
		UpdatedAt:   rec.UpdatedAt,
	}
}

func jsonPayload(method, endpoint string, body any) (models.RequestPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return models.RequestPayload{}, fmt.Errorf("failed to encode request: %w", err)
	}
	return models.RequestPayload{Endpoint: endpoint, Method: method, Body: raw}, nil
}
