package data

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/projection"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/client/syncqueue"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/validation"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

// UpdateProfile сохраняет профиль локально и ставит изменение в очередь.
// Пустые поля сохраняют текущее значение.
func (s *OrderService) UpdateProfile(ctx context.Context, profile models.Profile) (*LocalProfile, error) {
	if err := validation.ValidateEmail(profile.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePhone(profile.Phone); err != nil {
		return nil, err
	}

	merged := profile
	if current, err := s.GetProfile(ctx); err == nil {
		merged = mergeProfile(current.Profile, profile)
	}

	payload, err := jsonPayload(http.MethodPatch, api.PathProfile, api.ProfileUpdateRequest{
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Phone:     profile.Phone,
	})
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	rec, err := projection.NewRecord(models.RecordKindProfile, models.ProfileRecordID, opID, models.RecordPendingSync, merged)
	if err != nil {
		return nil, err
	}
	if err := s.records.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to store local profile: %w", err)
	}

	s.queue.Enqueue(models.OperationProfileUpdate, payload, syncqueue.EnqueueOptions{
		ID:   opID,
		Meta: recordMeta(models.RecordKindProfile, models.ProfileRecordID),
	})

	s.logger.Info("Profile update queued", "operation_id", opID)
	return toLocalProfile(rec, merged), nil
}

// GetProfile возвращает локально сохраненный профиль
func (s *OrderService) GetProfile(ctx context.Context) (*LocalProfile, error) {
	rec, err := s.records.Get(ctx, models.RecordKindProfile, models.ProfileRecordID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("no local profile: %w", err)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	profile, err := projection.Decode[models.Profile](rec)
	if err != nil {
		return nil, err
	}
	return toLocalProfile(rec, profile), nil
}

// RecordPayment ставит платеж в очередь. У платежей нет локальной записи;
// ход виден через статус синхронизации и события операций.
func (s *OrderService) RecordPayment(ctx context.Context, payment models.Payment) (string, error) {
	if strings.TrimSpace(payment.OrderNumber) == "" {
		return "", fmt.Errorf("order number is required")
	}
	if err := validation.ValidateAmount(payment.Amount); err != nil {
		return "", err
	}
	if payment.PaymentMethod == "" {
		return "", fmt.Errorf("payment method is required")
	}
	if payment.PaymentType == "" {
		payment.PaymentType = "payment"
	}

	payload, err := jsonPayload(http.MethodPost, api.PathPayments, api.PaymentRequest(payment))
	if err != nil {
		return "", err
	}

	opID := s.queue.Enqueue(models.OperationPayment, payload, syncqueue.EnqueueOptions{
		Meta: map[string]string{"order_number": payment.OrderNumber},
	})

	s.logger.Info("Payment queued",
		"operation_id", opID,
		"order_number", payment.OrderNumber,
		"method", payment.PaymentMethod,
		"type", payment.PaymentType)
	return opID, nil
}

func mergeProfile(current, update models.Profile) models.Profile {
	merged := current
	if update.Username != "" {
		merged.Username = update.Username
	}
	if update.FirstName != "" {
		merged.FirstName = update.FirstName
	}
	if update.LastName != "" {
		merged.LastName = update.LastName
	}
	if update.Email != "" {
		merged.Email = update.Email
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Role != "" {
		merged.Role = update.Role
	}
	return merged
}

func toLocalProfile(rec *models.LocalRecord, profile models.Profile) *LocalProfile {
	return &LocalProfile{
		Profile:     profile,
		SyncStatus:  rec.Status,
		SyncError:   rec.SyncError,
		OperationID: rec.OperationID,
		UpdatedAt:   rec.UpdatedAt,
	}
}
