package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
	"github.com/yashd04xyz/LC-web/internal/pricing"
)

const suggestionCount = 4

// CartEngine is the slice of the cart engine the HTTP layer consumes.
type CartEngine interface {
	Items(ctx context.Context, cartID string) []domain.LineItem
	Add(ctx context.Context, cartID, productID string, qty int, variantID string) []domain.LineItem
	UpdateQuantity(ctx context.Context, cartID, productID string, qty int, variantID string) []domain.LineItem
	Remove(ctx context.Context, cartID, productID, variantID string) []domain.LineItem
	ReplaceRaw(ctx context.Context, cartID string, data []byte) []domain.LineItem
	Clear(ctx context.Context, cartID string) []domain.LineItem
}

type CartHandler struct {
	engine  CartEngine
	catalog CatalogService
	pricing pricing.Config
	log     *zap.Logger
}

func NewCartHandler(engine CartEngine, catalog CatalogService, cfg pricing.Config, log *zap.Logger) *CartHandler {
	return &CartHandler{
		engine:  engine,
		catalog: catalog,
		pricing: cfg,
		log:     log,
	}
}

type saveCartRequest struct {
	CartID string          `json:"cartId"`
	Items  json.RawMessage `json:"items"`
}

type addItemRequest struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Quantity  float64 `json:"quantity"`
}

type updateQuantityRequest struct {
	VariantID string  `json:"variant_id"`
	Quantity  float64 `json:"quantity"`
}

func cartPayload(cartID string, items []domain.LineItem) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"cartId":  cartID,
		"cart":    map[string]interface{}{"items": items},
	}
}

// Save replaces the whole cart with a client-provided snapshot. The
// payload is untrusted; normalization coerces or drops whatever it must.
func (h *CartHandler) Save(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	var req saveCartRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CartID == "" {
		req.CartID = fmt.Sprintf("cart_%s", uuid.NewString())
	}

	items := h.engine.ReplaceRaw(r.Context(), req.CartID, req.Items)
	respondJSON(w, h.log, http.StatusOK, cartPayload(req.CartID, items))
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	items := h.engine.Items(r.Context(), cartID)
	respondJSON(w, h.log, http.StatusOK, cartPayload(cartID, items))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, h.log, http.StatusBadRequest, "product_id is required")
		return
	}

	items := h.engine.Add(r.Context(), cartID, req.ProductID, floorQuantity(req.Quantity), req.VariantID)
	respondJSON(w, h.log, http.StatusCreated, cartPayload(cartID, items))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	productID := chi.URLParam(r, "productID")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	qty := 0
	if req.Quantity > 0 {
		qty = floorQuantity(req.Quantity)
	}
	items := h.engine.UpdateQuantity(r.Context(), cartID, productID, qty, req.VariantID)
	respondJSON(w, h.log, http.StatusOK, cartPayload(cartID, items))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	productID := chi.URLParam(r, "productID")
	variantID := r.URL.Query().Get("variant_id")

	items := h.engine.Remove(r.Context(), cartID, productID, variantID)
	respondJSON(w, h.log, http.StatusOK, cartPayload(cartID, items))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	items := h.engine.Clear(r.Context(), cartID)
	respondJSON(w, h.log, http.StatusOK, cartPayload(cartID, items))
}

// Totals joins the cart against current catalog prices and derives the
// order summary. Prices come fresh from the catalog on every call.
func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	items := h.engine.Items(r.Context(), cartID)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	prices := h.catalog.Lookup(r.Context(), ids)
	totals := pricing.ComputeTotals(h.pricing, items, prices)

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success": true,
		"cartId":  cartID,
		"totals":  totals,
	})
}

// Suggestions returns a few catalog picks not already in the cart; an
// unavailable catalog degrades to an empty list.
func (h *CartHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	items := h.engine.Items(r.Context(), cartID)

	exclude := make([]string, len(items))
	for i, item := range items {
		exclude[i] = item.ProductID
	}
	suggestions := h.catalog.Suggestions(r.Context(), exclude, suggestionCount)

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": suggestions,
	})
}

// floorQuantity maps a possibly fractional client quantity onto the
// stored integer domain: floored, never below 1.
func floorQuantity(q float64) int {
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}
