package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/validation"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

// Типы платежей и статус, записываемый для принятых платежей
const (
	PaymentTypePayment = "payment"
	PaymentTypeRefund  = "refund"

	TransactionCompleted = "completed"
)

// PaymentHandler записывает платежи и отдает список транзакций
type PaymentHandler struct {
	logger       *slog.Logger
	orders       storage.OrderStorage
	transactions storage.TransactionStorage
	clock        clock.Clock
}

// NewPaymentHandler создает обработчик платежей
func NewPaymentHandler(logger *slog.Logger, orders storage.OrderStorage, transactions storage.TransactionStorage, clk clock.Clock) *PaymentHandler {
	return &PaymentHandler{
		logger:       logger,
		orders:       orders,
		transactions: transactions,
		clock:        clk,
	}
}

// Create обрабатывает POST /api/payments
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode payment request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.OrderNumber == "" {
		sendError(h.logger, w, "order_number is required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateAmount(req.Amount); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PaymentType == "" {
		req.PaymentType = PaymentTypePayment
	}
	if req.PaymentType != PaymentTypePayment && req.PaymentType != PaymentTypeRefund {
		sendError(h.logger, w, "payment_type must be payment or refund", http.StatusBadRequest)
		return
	}
	if req.PaymentMethod == "" {
		sendError(h.logger, w, "payment_method is required", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			sendError(h.logger, w, "order not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	id := uuid.New()
	tx := &models.Transaction{
		ID:            id.String(),
		TransactionID: "TXN-" + strings.ToUpper(id.String()[:8]),
		OrderNumber:   order.OrderNumber,
		PaymentMethod: req.PaymentMethod,
		PaymentType:   req.PaymentType,
		Status:        TransactionCompleted,
		Amount:        req.Amount,
		CreatedAt:     h.clock.Now().UTC(),
	}
	if err := h.transactions.CreateTransaction(ctx, tx); err != nil {
		h.logger.ErrorContext(ctx, "failed to record payment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "payment recorded",
		slog.String("transaction_id", tx.TransactionID),
		slog.String("order_number", tx.OrderNumber),
		slog.String("type", tx.PaymentType),
		slog.Float64("amount", tx.Amount))

	sendJSON(h.logger, w, tx, http.StatusCreated)
}

// List обрабатывает GET /api/transactions?limit=N
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := parseLimit(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.transactions.ListTransactions(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list transactions", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.ListResponse[models.Transaction]{Results: txs, Count: len(txs)}, http.StatusOK)
}
