package http

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	apperrors "github.com/aman11srivastava/shopping-cart/pkg/errors"
	"github.com/aman11srivastava/shopping-cart/pkg/httputil"
	"github.com/aman11srivastava/shopping-cart/pkg/pagination"
	"github.com/aman11srivastava/shopping-cart/pkg/slug"
)

// CatalogHandler serves a fixed product catalog in the public fake-store
// shape: successful responses are bare JSON, not wrapped in an envelope.
type CatalogHandler struct {
	products []domain.Product
	byID     map[int]domain.Product
	logger   *slog.Logger
}

// NewCatalogHandler creates a handler serving products in the given order.
func NewCatalogHandler(products []domain.Product, logger *slog.Logger) *CatalogHandler {
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &CatalogHandler{
		products: products,
		byID:     byID,
		logger:   logger,
	}
}

// ListProducts handles GET /products. The optional limit and sort query
// parameters truncate and order the list.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pagination.Apply(h.products, params))
}

// ListByCategory handles GET /products/category/{category}. Categories match
// by slug, so "mens-clothing" finds "men's clothing".
func (h *CatalogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(err.Error()), h.logger)
		return
	}

	category := chi.URLParam(r, "category")
	matched := make([]domain.Product, 0)
	for _, p := range h.products {
		if slug.Match(p.Category, category) {
			matched = append(matched, p)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, pagination.Apply(matched, params))
}

// GetProduct handles GET /products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be an integer"), h.logger)
		return
	}

	p, ok := h.byID[id]
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("product", raw), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// ListCategories handles GET /products/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	set := make(map[string]struct{})
	for _, p := range h.products {
		if p.Category != "" {
			set[p.Category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	httputil.WriteJSON(w, http.StatusOK, categories)
}

// Count returns the number of products served.
func (h *CatalogHandler) Count() int {
	return len(h.products)
}
