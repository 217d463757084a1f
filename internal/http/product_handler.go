package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/catalog"
	"github.com/yashd04xyz/LC-web/internal/domain"
)

// CatalogService is the slice of the catalog the HTTP layer consumes.
type CatalogService interface {
	List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Suggestions(ctx context.Context, excludeIDs []string, n int) []domain.Product
	Lookup(ctx context.Context, ids []string) map[string]float64
	Seed(ctx context.Context) (int, error)
}

type ProductHandler struct {
	catalog CatalogService
	log     *zap.Logger
}

func NewProductHandler(catalog CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category: q.Get("category"),
		Size:     q.Get("size"),
		Color:    q.Get("color"),
		Occasion: q.Get("occasion"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			respondError(w, h.log, http.StatusBadRequest, "maxPrice must be a non-negative number")
			return
		}
		filter.MaxPrice = maxPrice
	}

	products, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		h.log.Error("product listing failed", zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Server error")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, h.log, http.StatusNotFound, "Product not found")
			return
		}
		h.log.Error("product get failed", zap.String("id", id), zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// Seed loads the default catalog; a non-empty catalog is left untouched.
func (h *ProductHandler) Seed(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalog.Seed(r.Context())
	if err != nil {
		h.log.Error("product seeding failed", zap.Error(err))
		respondError(w, h.log, http.StatusInternalServerError, "Server error")
		return
	}

	message := "Seeded products"
	if count == 0 {
		message = "Products already seeded"
	}
	respondJSON(w, h.log, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"count":   count,
	})
}
