package handler

import (
	"bytes"
	"net/http"

	"garastore/internal/model"
	"garastore/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	reports service.ReportService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, reports service.ReportService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		reports: reports,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), identity, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.OrderResponse{Message: "New Order Created", Order: order})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Mine handles GET /api/orders/mine.
func (h *OrderHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	orders, err := h.service.ListMine(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Summary handles GET /api/orders/summary.
func (h *OrderHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Pay handles PUT /api/orders/{id}/pay. The body is the payment
// processor's capture result.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var result model.PaymentResult
	if err := decodeJSON(r, &result); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.MarkPaid(r.Context(), id, &result)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrderResponse{Message: "Order Paid", Order: order})
}

// Deliver handles PUT /api/orders/{id}/deliver.
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.MarkDelivered(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrderResponse{Message: "Order Delivered", Order: order})
}

// Delete handles DELETE /api/orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Order Deleted"})
}

// Export handles GET /api/orders/export.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeFile(w, "orders.xlsx", buf.Bytes(), h.logger)
}
