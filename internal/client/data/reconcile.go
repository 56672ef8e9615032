package data

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/events"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/projection"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
)

// handle сверяет локальные записи с результатом операции.
// Просроченная операция считается проваленной: запись остается видимой с sync_failed.
func (s *OrderService) handle(e events.Event) {
	switch e.Type {
	case events.OperationCompleted, events.OperationFailed, events.OperationExpired:
	default:
		return
	}
	p, ok := e.Payload.(syncqueue.OperationEvent)
	if !ok {
		return
	}
	kind, id := p.Meta[metaRecordKind], p.Meta[metaRecordID]
	if kind == "" || id == "" {
		return
	}

	opID := p.Operation.ID
	ctx := context.Background()
	rec, err := s.records.Get(ctx, kind, id)
	if err != nil {
		if !errors.Is(err, storage.ErrRecordNotFound) {
			s.logger.Warn("Failed to load local record", "kind", kind, "id", id, "error", err)
		}
		return
	}
	// запись уже сверена или принадлежит более новой операции
	if rec.OperationID != opID {
		s.logger.Debug("Skipping outcome of superseded operation", "kind", kind, "id", id, "operation_id", opID)
		return
	}

	switch {
	case e.Type == events.OperationFailed, e.Type == events.OperationExpired:
		s.markFailed(ctx, rec, p.Error)
	case kind == models.RecordKindOrder:
		s.confirmOrder(ctx, rec, p.Response)
	case kind == models.RecordKindProfile:
		s.confirmProfile(ctx, rec, p.Response)
	}
}

func (s *OrderService) confirmOrder(ctx context.Context, rec *models.LocalRecord, resp json.RawMessage) {
	order, err := projection.Decode[models.Order](rec)
	if err != nil {
		s.logger.Warn("Local order is unreadable", "order_id", rec.ID, "error", err)
		return
	}

	var server models.Order
	if len(resp) > 0 && json.Unmarshal(resp, &server) == nil && server.ID != "" && !models.IsLocalID(server.ID) {
		order = server
	} else if rec.Temporary() {
		s.logger.Warn("Server response carries no order id, keeping temporary record", "order_id", rec.ID)
		if _, err := s.records.SetStatus(ctx, models.RecordKindOrder, rec.ID, models.RecordSynced, ""); err != nil {
			s.logger.Warn("Failed to update local order", "order_id", rec.ID, "error", err)
		}
		return
	}

	status := order.Status
	if status == "" {
		status = models.RecordSynced
	}
	confirmed, err := projection.NewRecord(models.RecordKindOrder, order.ID, "", status, order)
	if err != nil {
		s.logger.Error("Failed to encode confirmed order", "order_id", order.ID, "error", err)
		return
	}
	if err := s.records.Replace(ctx, rec.ID, confirmed); err != nil {
		s.logger.Error("Failed to replace local order", "temp_id", rec.ID, "order_id", order.ID, "error", err)
		return
	}

	s.logger.Info("Order synced", "temp_id", rec.ID, "order_id", order.ID, "order_number", order.OrderNumber)
	s.bus.Emit(events.OrderSynced, s.clock.Now(), OrderSynced{
		Order:       order,
		TempID:      rec.ID,
		OperationID: rec.OperationID,
	})
}

func (s *OrderService) confirmProfile(ctx context.Context, rec *models.LocalRecord, resp json.RawMessage) {
	profile, err := projection.Decode[models.Profile](rec)
	if err != nil {
		s.logger.Warn("Local profile is unreadable", "error", err)
		return
	}

	var server models.Profile
	if len(resp) > 0 && json.Unmarshal(resp, &server) == nil && server.Username != "" {
		profile = server
	}

	confirmed, err := projection.NewRecord(models.RecordKindProfile, models.ProfileRecordID, "", models.RecordSynced, profile)
	if err != nil {
		s.logger.Error("Failed to encode confirmed profile", "error", err)
		return
	}
	confirmed.CreatedAt = rec.CreatedAt
	if err := s.records.Put(ctx, confirmed); err != nil {
		s.logger.Error("Failed to store confirmed profile", "error", err)
		return
	}

	s.logger.Info("Profile synced", "operation_id", rec.OperationID)
	s.bus.Emit(events.ProfileSynced, s.clock.Now(), ProfileSynced{Profile: profile, OperationID: rec.OperationID})
}

// markFailed флагует запись, не удаляя ее: пользователь решает сам
func (s *OrderService) markFailed(ctx context.Context, rec *models.LocalRecord, reason string) {
	if _, err := s.records.SetStatus(ctx, rec.Kind, rec.ID, models.RecordSyncFailed, reason); err != nil {
		s.logger.Error("Failed to flag local record", "kind", rec.Kind, "id", rec.ID, "error", err)
		return
	}

	s.logger.Warn("Local record sync failed", "kind", rec.Kind, "id", rec.ID, "error", reason)
	if rec.Kind == models.RecordKindOrder {
		s.bus.Emit(events.OrderSyncFailed, s.clock.Now(), OrderSyncFailed{
			OrderID:     rec.ID,
			OperationID: rec.OperationID,
			Error:       reason,
		})
	}
}
