package repository

import (
	"context"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
)

// CatalogCache stores the most recently fetched product catalog so that
// storefront sessions started within the TTL skip the remote call.
type CatalogCache interface {
	// Get returns the cached catalog, or an error wrapping apperrors.ErrNotFound on a miss.
	Get(ctx context.Context) ([]domain.Product, error)

	// Save stores the catalog, replacing any previous entry.
	Save(ctx context.Context, products []domain.Product) error
}
