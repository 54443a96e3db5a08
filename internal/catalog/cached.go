package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
	"github.com/aman11srivastava/shopping-cart/internal/repository"
	apperrors "github.com/aman11srivastava/shopping-cart/pkg/errors"
)

// CachedFetcher serves the catalog from a cache when possible and falls back
// to the wrapped fetcher. The cache is best effort: its failures are logged
// and never returned.
type CachedFetcher struct {
	next   Fetcher
	cache  repository.CatalogCache
	logger *slog.Logger
}

// NewCachedFetcher wraps next with cache.
func NewCachedFetcher(next Fetcher, cache repository.CatalogCache, logger *slog.Logger) *CachedFetcher {
	return &CachedFetcher{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

// FetchProducts implements Fetcher.
func (f *CachedFetcher) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := f.cache.Get(ctx)
	if err == nil {
		// Cached entries get the same checks as a fetched payload. A null
		// blob counts as a miss.
		if products == nil {
			err = apperrors.ErrNotFound
		} else if verr := validateProducts(products); verr != nil {
			err = fmt.Errorf("invalid cached catalog: %w", verr)
		}
	}
	switch {
	case err == nil:
		cacheLookupsTotal.WithLabelValues("hit").Inc()
		f.logger.DebugContext(ctx, "catalog cache hit", slog.Int("products", len(products)))
		return products, nil
	case errors.Is(err, apperrors.ErrNotFound):
		cacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		cacheLookupsTotal.WithLabelValues("error").Inc()
		f.logger.WarnContext(ctx, "catalog cache read failed", slog.String("error", err.Error()))
	}

	products, err = f.next.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Save(ctx, products); err != nil {
		f.logger.WarnContext(ctx, "catalog cache write failed", slog.String("error", err.Error()))
	}
	return products, nil
}
