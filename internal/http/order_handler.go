package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
	"github.com/yashd04xyz/LC-web/internal/orders"
)

type CheckoutService interface {
	Submit(ctx context.Context, cartID, customerName string) (*domain.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type OrderHandler struct {
	checkout CheckoutService
	log      *zap.Logger
}

func NewOrderHandler(checkout CheckoutService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, log: log}
}

type submitOrderRequest struct {
	CartID   string `json:"cartId"`
	Customer struct {
		Name string `json:"name"`
	} `json:"customer"`
}

// Submit runs checkout for a cart. A failure leaves the cart untouched,
// so the client can simply retry.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CartID == "" {
		respondError(w, h.log, http.StatusBadRequest, "cartId is required")
		return
	}

	order, err := h.checkout.Submit(r.Context(), req.CartID, req.Customer.Name)
	if err != nil {
		if errors.Is(err, orders.ErrEmptyCart) {
			respondError(w, h.log, http.StatusBadRequest, "Your bag is empty")
			return
		}
		h.log.Error("order submission failed", zap.String("cart_id", req.CartID), zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Order processing failed. Please try again.")
		return
	}

	respondJSON(w, h.log, http.StatusCreated, map[string]interface{}{
		"success": true,
		"orderId": order.ID.String(),
		"total":   order.Total,
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.checkout.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			respondError(w, h.log, http.StatusNotFound, "Order not found")
			return
		}
		h.log.Error("order get failed", zap.String("id", id.String()), zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}
