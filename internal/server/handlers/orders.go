package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/clock"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/models"
	"github.com/ntibreymaximus/adakings-frontend-sub002/internal/server/storage"
	"github.com/ntibreymaximus/adakings-frontend-sub002/pkg/api"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

var orderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusAccepted:  true,
	models.OrderStatusFulfilled: true,
	models.OrderStatusCancelled: true,
}

// OrderHandler обрабатывает запросы заказов
type OrderHandler struct {
	logger *slog.Logger
	orders storage.OrderStorage
	clock  clock.Clock
}

// NewOrderHandler создает обработчик заказов
func NewOrderHandler(logger *slog.Logger, orders storage.OrderStorage, clk clock.Clock) *OrderHandler {
	return &OrderHandler{
		logger: logger,
		orders: orders,
		clock:  clk,
	}
}

// Create обрабатывает POST /api/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode order request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	now := h.clock.Now().UTC()
	order := &models.Order{
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		DeliveryType:     req.DeliveryType,
		DeliveryLocation: req.DeliveryLocation,
		Notes:            req.Notes,
		Items:            req.Items,
		Status:           models.OrderStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if order.DeliveryType == "" {
		order.DeliveryType = models.DeliveryPickup
	}
	if err := order.Validate(); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	order.Total = order.CalculateTotal()

	if err := h.orders.CreateOrder(ctx, order); err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	username, _ := GetUsername(ctx)
	h.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("username", username),
		slog.Float64("total", order.Total))

	sendJSON(h.logger, w, order, http.StatusCreated)
}

// Update обрабатывает PATCH /api/orders/{id}
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	var req api.UpdateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode order update", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Status != nil && !orderStatuses[*req.Status] {
		sendError(h.logger, w, "unknown order status "+strconv.Quote(*req.Status), http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			sendError(h.logger, w, "order not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get order", slog.String("order_id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if len(req.Items) > 0 {
		order.Items = req.Items
		if err := order.Validate(); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		order.Total = order.CalculateTotal()
	}
	order.UpdatedAt = h.clock.Now().UTC()

	if err := h.orders.UpdateOrder(ctx, order); err != nil {
		h.logger.ErrorContext(ctx, "failed to update order", slog.String("order_id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "order updated", slog.String("order_id", id), slog.String("status", order.Status))
	sendJSON(h.logger, w, order, http.StatusOK)
}

// List обрабатывает GET /api/orders?limit=N
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := parseLimit(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	orders, err := h.orders.ListOrders(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	results := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		results = append(results, *o)
	}
	sendJSON(h.logger, w, api.ListResponse[models.Order]{Results: results, Count: len(results)}, http.StatusOK)
}

// parseLimit читает параметр limit, по умолчанию defaultListLimit
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("invalid limit parameter")
	}
	return min(limit, maxListLimit), nil
}
